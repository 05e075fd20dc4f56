package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-details/domain"
)

// monthlySeries returns one sample per month starting 2024-01-01.
func monthlySeries(navs ...float64) []domain.NavSample {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.NavSample, len(navs))
	for i, v := range navs {
		out[i] = domain.NavSample{Date: start.AddDate(0, i, 0), Nav: v}
	}
	return out
}

func rangeSeries(n int, first float64) []domain.NavSample {
	navs := make([]float64, n)
	for i := range navs {
		navs[i] = first + float64(i)
	}
	return monthlySeries(navs...)
}

func TestWindow_EmptyInputs(t *testing.T) {
	testCases := []struct {
		name          string
		series        []domain.NavSample
		width, height float64
	}{
		{"empty series", nil, 300, 200},
		{"zero width", rangeSeries(5, 10), 0, 200},
		{"negative height", rangeSeries(5, 10), 300, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := Window(tc.series, domain.Period1Y, tc.width, tc.height)

			assert.NotNil(t, w.Points)
			assert.NotNil(t, w.Sliced)
			assert.Empty(t, w.Points)
			assert.Empty(t, w.Sliced)
			assert.Zero(t, w.Min)
			assert.Zero(t, w.Max)
		})
	}
}

func TestWindow_TrailingYear(t *testing.T) {
	series := rangeSeries(15, 10) // navs 10..24

	w := Window(series, domain.Period1Y, 110, 200)

	require.Len(t, w.Sliced, 12)
	require.Len(t, w.Points, 12)
	assert.Equal(t, series[3:], w.Sliced)
	assert.Equal(t, 13.0, w.Min)
	assert.Equal(t, 24.0, w.Max)

	assert.Equal(t, domain.PlotPoint{X: 0, Y: 200}, w.Points[0])
	assert.Equal(t, domain.PlotPoint{X: 110, Y: 0}, w.Points[11])
	for i, p := range w.Points {
		assert.InDelta(t, float64(i)*10, p.X, 1e-9)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.LessOrEqual(t, p.Y, 200.0)
	}
}

func TestWindow_ShortSeriesUsesAllSamples(t *testing.T) {
	series := rangeSeries(7, 50)

	w := Window(series, domain.Period5Y, 300, 200)

	assert.Len(t, w.Sliced, 7)
	assert.Equal(t, series, w.Sliced)
}

func TestWindow_OneMonthKeepsTwoSamples(t *testing.T) {
	series := rangeSeries(10, 1)

	w := Window(series, domain.Period1M, 300, 200)

	require.Len(t, w.Points, 2)
	assert.Equal(t, series[8:], w.Sliced)
	assert.Equal(t, 0.0, w.Points[0].X)
	assert.Equal(t, 300.0, w.Points[1].X)
}

func TestWindow_FlatSeries(t *testing.T) {
	w := Window(monthlySeries(42, 42, 42, 42), domain.Period3M, 90, 60)

	require.Len(t, w.Points, 3)
	assert.Equal(t, 42.0, w.Min)
	assert.Equal(t, 42.0, w.Max)
	for _, p := range w.Points {
		assert.Equal(t, 60.0, p.Y)
		assert.False(t, math.IsNaN(p.Y))
	}
}

func TestWindow_SingleSample(t *testing.T) {
	w := Window(monthlySeries(12.5), domain.Period1Y, 300, 200)

	require.Len(t, w.Points, 1)
	assert.Equal(t, domain.PlotPoint{X: 0, Y: 200}, w.Points[0])
	assert.Equal(t, 12.5, w.Min)
	assert.Equal(t, 12.5, w.Max)
}

func TestWindow_DoesNotMutateInput(t *testing.T) {
	series := monthlySeries(5, 3, 9, 1, 7)
	before := append([]domain.NavSample(nil), series...)

	w := Window(series, domain.Period3M, 100, 100)
	w.Sliced[0].Nav = -1

	assert.Equal(t, before, series)
}

func TestWindow_Idempotent(t *testing.T) {
	series := monthlySeries(5, 3, 9, 1, 7, 8, 2)

	first := Window(series, domain.Period6M, 250, 150)
	second := Window(series, domain.Period6M, 250, 150)

	assert.Equal(t, first, second)
}

func TestWindow_ExtremesTouchEdges(t *testing.T) {
	w := Window(monthlySeries(5, 3, 9, 1, 7), domain.Period6M, 100, 80)

	// 1 is the minimum, 9 the maximum
	assert.Equal(t, 80.0, w.Points[3].Y)
	assert.Equal(t, 0.0, w.Points[2].Y)
}

func TestPeriodReturn(t *testing.T) {
	testCases := []struct {
		name   string
		series []domain.NavSample
		want   float64
	}{
		{"empty", nil, 0},
		{"single", monthlySeries(10), 0},
		{"gain", monthlySeries(100, 105, 110), 10},
		{"loss", monthlySeries(200, 150), -25},
		{"zero first", monthlySeries(0, 10), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, PeriodReturn(tc.series), 1e-9)
		})
	}
}
