package service

import "scheme-details/domain"

var riskLevels = []domain.RiskLevel{
	domain.RiskLow,
	domain.RiskLowToModerate,
	domain.RiskModerate,
	domain.RiskModeratelyHigh,
	domain.RiskHigh,
	domain.RiskVeryHigh,
}

// RiskLevelIndex returns the position of level on the riskometer, or -1.
func RiskLevelIndex(level domain.RiskLevel) int {
	for i, l := range riskLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// NewRiskometer marks the active segment for level. Unknown levels fall back
// to the lowest segment.
func NewRiskometer(level domain.RiskLevel) domain.Riskometer {
	index := min(max(RiskLevelIndex(level), 0), len(riskLevels)-1)

	segments := make([]domain.RiskSegment, len(riskLevels))
	for i, l := range riskLevels {
		segments[i] = domain.RiskSegment{Level: l, Active: i == index}
	}

	return domain.Riskometer{
		Level:    riskLevels[index],
		Index:    index,
		Segments: segments,
	}
}
