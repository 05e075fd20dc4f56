package service

import "time"

const (
	DefaultAnnualRate = 12.0 // % per year assumed by the calculator

	MinTenureMonths = 1
	MaxTenureMonths = 60 // 5 years

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200

	DefaultCacheTTL = 5 * time.Minute
)
