package service

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"scheme-details/domain"
)

// monthsPerYear annualises the monthly NAV returns.
const monthsPerYear = 12

// SeriesStats summarises the volatility and drawdown of a windowed series.
// Samples are taken to be monthly: volatility is the standard deviation of
// sample-to-sample returns scaled by sqrt(12), so the figure is only annualised
// correctly for monthly data. Daily series need their own scaling.
func SeriesStats(sliced []domain.NavSample) domain.SeriesStats {
	if len(sliced) < 2 {
		return domain.SeriesStats{}
	}

	navs := make([]float64, len(sliced))
	for i, s := range sliced {
		navs[i] = s.Nav
	}

	return domain.SeriesStats{
		Volatility:  annualizedVolatility(monthlyReturns(navs)),
		MaxDrawdown: maxDrawdown(navs),
	}
}

// monthlyReturns[i] = (nav[i+1] - nav[i]) / nav[i], 0 where nav[i] is 0.
func monthlyReturns(navs []float64) []float64 {
	returns := make([]float64, len(navs)-1)
	for i := 1; i < len(navs); i++ {
		if navs[i-1] != 0 {
			returns[i-1] = (navs[i] - navs[i-1]) / navs[i-1]
		}
	}
	return returns
}

func annualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	return stat.StdDev(returns, nil) * math.Sqrt(monthsPerYear)
}

// maxDrawdown is the largest fall from a running peak, as a fraction of it.
func maxDrawdown(navs []float64) float64 {
	worst := 0.0
	peak := navs[0]
	for _, v := range navs {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}
