package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-details/domain"
)

func TestRiskLevelIndex(t *testing.T) {
	assert.Equal(t, 0, RiskLevelIndex(domain.RiskLow))
	assert.Equal(t, 2, RiskLevelIndex(domain.RiskModerate))
	assert.Equal(t, 5, RiskLevelIndex(domain.RiskVeryHigh))
	assert.Equal(t, -1, RiskLevelIndex("Extreme"))
}

func TestNewRiskometer(t *testing.T) {
	testCases := []struct {
		level     domain.RiskLevel
		wantIndex int
		wantLevel domain.RiskLevel
	}{
		{domain.RiskVeryHigh, 5, domain.RiskVeryHigh},
		{domain.RiskModeratelyHigh, 3, domain.RiskModeratelyHigh},
		{"unknown", 0, domain.RiskLow},
	}

	for _, tc := range testCases {
		t.Run(string(tc.level), func(t *testing.T) {
			m := NewRiskometer(tc.level)

			assert.Equal(t, tc.wantIndex, m.Index)
			assert.Equal(t, tc.wantLevel, m.Level)
			require.Len(t, m.Segments, 6)

			active := 0
			for i, s := range m.Segments {
				if s.Active {
					active++
					assert.Equal(t, tc.wantIndex, i)
				}
			}
			assert.Equal(t, 1, active)
		})
	}
}
