package service

import (
	"math"

	"scheme-details/domain"
)

// Project computes the SIP or lump-sum growth of input at annualRate percent
// per year, compounded monthly. A SIP contribution is made at the start of
// each month (annuity-due).
//
// Input is not validated: a negative or non-finite amount or tenure yields
// NaN or meaningless figures. Callers that need validation go through
// ProjectionService.
func Project(input domain.InvestmentInput, annualRate float64) domain.InvestmentResult {
	r := annualRate / 12 / 100
	n := math.Round(input.TenureYears * 12)

	var invested, value float64
	switch input.Mode {
	case domain.ModeSIP:
		invested = input.Amount * n
		if r == 0 {
			value = input.Amount * n
		} else {
			value = input.Amount * ((math.Pow(1+r, n) - 1) / r) * (1 + r)
		}
	default:
		invested = input.Amount
		if r == 0 {
			value = input.Amount
		} else {
			value = input.Amount * math.Pow(1+r, n)
		}
	}

	totalInvested := math.Round(invested)
	estimatedValue := math.Round(value)

	// returns come from the rounded figures so the three always reconcile
	return domain.InvestmentResult{
		TotalInvested:  totalInvested,
		EstimatedValue: estimatedValue,
		TotalReturns:   estimatedValue - totalInvested,
	}
}
