package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"scheme-details/domain"
)

func TestSeriesStats_TooShort(t *testing.T) {
	assert.Equal(t, domain.SeriesStats{}, SeriesStats(nil))
	assert.Equal(t, domain.SeriesStats{}, SeriesStats(monthlySeries(10)))
}

func TestSeriesStats_Drawdown(t *testing.T) {
	stats := SeriesStats(monthlySeries(100, 110, 99, 120, 108))

	assert.InDelta(t, 0.1, stats.MaxDrawdown, 1e-9)
}

func TestSeriesStats_RisingSeriesHasNoDrawdown(t *testing.T) {
	stats := SeriesStats(rangeSeries(12, 10))

	assert.Zero(t, stats.MaxDrawdown)
	assert.Greater(t, stats.Volatility, 0.0)
}

func TestSeriesStats_ConstantGrowthHasNoVolatility(t *testing.T) {
	stats := SeriesStats(monthlySeries(100, 110, 121, 133.1))

	assert.InDelta(t, 0, stats.Volatility, 1e-9)
}

func TestSeriesStats_Volatility(t *testing.T) {
	// monthly returns +10%, -10%, +10%
	stats := SeriesStats(monthlySeries(100, 110, 99, 108.9))

	// sample standard deviation of {0.1, -0.1, 0.1}
	want := math.Sqrt((2*math.Pow(0.1-0.1/3, 2)+math.Pow(-0.1-0.1/3, 2))/2) * math.Sqrt(12)
	assert.InDelta(t, want, stats.Volatility, 1e-9)
}
