package service

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"scheme-details/domain"
)

// minWindowSamples is the fewest samples that still draw a line segment.
const minWindowSamples = 2

// Window slices the trailing period of series and maps each sample onto a
// width x height plot with the origin at the top-left corner.
//
// An empty series or a viewport without area gives an empty result. A series
// with a single sample still produces one point at x=0.
func Window(series []domain.NavSample, period domain.Period, width, height float64) domain.WindowResult {
	if len(series) == 0 || width <= 0 || height <= 0 {
		return domain.WindowResult{
			Points: []domain.PlotPoint{},
			Sliced: []domain.NavSample{},
		}
	}

	target := min(max(period.Months(), minWindowSamples), len(series))
	sliced := make([]domain.NavSample, target)
	copy(sliced, series[len(series)-target:])

	values := make([]float64, len(sliced))
	for i, s := range sliced {
		values[i] = s.Nav
	}
	lo := floats.Min(values)
	hi := floats.Max(values)

	spread := hi - lo
	if spread == 0 {
		spread = 1
	}
	step := width / float64(max(len(sliced)-1, 1))

	points := make([]domain.PlotPoint, len(sliced))
	for i, v := range values {
		points[i] = domain.PlotPoint{
			X: float64(i) * step,
			Y: height - ((v-lo)/spread)*height,
		}
	}

	return domain.WindowResult{
		Points: points,
		Min:    lo,
		Max:    hi,
		Sliced: sliced,
	}
}

// PeriodReturn is the percentage change from the first to the last sample.
func PeriodReturn(sliced []domain.NavSample) float64 {
	if len(sliced) == 0 {
		return 0
	}
	first := sliced[0].Nav
	last := sliced[len(sliced)-1].Nav
	if first <= 0 || math.IsNaN(first) {
		return 0
	}
	return (last - first) / first * 100
}
