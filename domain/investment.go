package domain

import "time"

// Mode selects how the calculator treats Amount.
type Mode string

const (
	ModeSIP     Mode = "sip"     // monthly contribution of Amount
	ModeLumpSum Mode = "lumpsum" // single contribution of Amount at t=0
)

func (m Mode) Valid() bool {
	return m == ModeSIP || m == ModeLumpSum
}

type InvestmentInput struct {
	Amount      float64 `json:"amount"`
	TenureYears float64 `json:"tenure_years"`
	Mode        Mode    `json:"mode"`
}

// InvestmentResult holds whole currency units. The fields stay float64 so
// that NaN from unvalidated input reaches the caller unchanged.
type InvestmentResult struct {
	TotalInvested  float64 `json:"total_invested"`
	EstimatedValue float64 `json:"estimated_value"`
	TotalReturns   float64 `json:"total_returns"`
}

// ReturnPercent is the gain relative to the invested amount, 0 when nothing
// was invested.
func (r InvestmentResult) ReturnPercent() float64 {
	if r.TotalInvested == 0 {
		return 0
	}
	return r.TotalReturns / r.TotalInvested * 100
}

type AmountBounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

type TenureOption struct {
	Label string  `json:"label"`
	Years float64 `json:"years"`
}

type ProjectionRecord struct {
	ID         string           `json:"id"`
	Input      InvestmentInput  `json:"input"`
	AnnualRate float64          `json:"annual_rate"`
	Result     InvestmentResult `json:"result"`
	CreatedAt  time.Time        `json:"created_at"`
}
