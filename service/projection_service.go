package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"scheme-details/domain"
	"scheme-details/repository"
)

// ProjectionConfig carries the calculator settings resolved from config.
type ProjectionConfig struct {
	AnnualRate float64
	SIP        domain.AmountBounds
	LumpSum    domain.AmountBounds
}

// DefaultProjectionConfig matches the calculator slider ranges.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		AnnualRate: DefaultAnnualRate,
		SIP:        domain.AmountBounds{Min: 500, Max: 100_000, Step: 500},
		LumpSum:    domain.AmountBounds{Min: 5_000, Max: 1_000_000, Step: 5_000},
	}
}

var tenureOptions = []domain.TenureOption{
	{Label: "1M", Years: 1.0 / 12},
	{Label: "3M", Years: 3.0 / 12},
	{Label: "6M", Years: 6.0 / 12},
	{Label: "1Y", Years: 1},
	{Label: "3Y", Years: 3},
	{Label: "5Y", Years: 5},
}

type ProjectionService struct {
	cfg  ProjectionConfig
	repo repository.ProjectionRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewProjectionService creates a ProjectionService that records every
// calculation in repo.
func NewProjectionService(
	cfg ProjectionConfig,
	repo repository.ProjectionRepository,
	log zerolog.Logger,
) *ProjectionService {
	return &ProjectionService{
		cfg:  cfg,
		repo: repo,
		log:  log.With().Str("component", "projection").Logger(),
		now:  time.Now,
	}
}

func (s *ProjectionService) AnnualRate() float64 {
	return s.cfg.AnnualRate
}

// Bounds returns the accepted amount range for mode.
func (s *ProjectionService) Bounds(mode domain.Mode) (domain.AmountBounds, error) {
	switch mode {
	case domain.ModeSIP:
		return s.cfg.SIP, nil
	case domain.ModeLumpSum:
		return s.cfg.LumpSum, nil
	}
	return domain.AmountBounds{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, mode)
}

func (s *ProjectionService) TenureOptions() []domain.TenureOption {
	out := make([]domain.TenureOption, len(tenureOptions))
	copy(out, tenureOptions)
	return out
}

// Calculate validates input against the configured bounds, projects it and
// records the result.
func (s *ProjectionService) Calculate(
	ctx context.Context,
	input domain.InvestmentInput,
) (domain.ProjectionRecord, error) {

	if err := s.validate(input); err != nil {
		return domain.ProjectionRecord{}, err
	}

	record := domain.ProjectionRecord{
		ID:         uuid.New().String(),
		Input:      input,
		AnnualRate: s.cfg.AnnualRate,
		Result:     Project(input, s.cfg.AnnualRate),
		CreatedAt:  s.now().UTC(),
	}

	// history is best effort
	if err := s.repo.Save(ctx, record); err != nil {
		s.log.Warn().Err(err).Str("id", record.ID).Msg("failed to save projection")
	}

	s.log.Debug().
		Str("mode", string(input.Mode)).
		Float64("amount", input.Amount).
		Float64("tenure_years", input.TenureYears).
		Float64("estimated_value", record.Result.EstimatedValue).
		Msg("projection calculated")

	return record, nil
}

func (s *ProjectionService) validate(input domain.InvestmentInput) error {
	bounds, err := s.Bounds(input.Mode)
	if err != nil {
		return err
	}
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) || input.Amount <= 0 {
		return fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}
	if input.Amount < bounds.Min {
		return fmt.Errorf("%w: amount is below the minimum of %.0f", ErrInvalidInput, bounds.Min)
	}
	if input.Amount > bounds.Max {
		return fmt.Errorf("%w: amount exceeds the maximum of %.0f", ErrInvalidInput, bounds.Max)
	}
	if math.IsNaN(input.TenureYears) || math.IsInf(input.TenureYears, 0) || input.TenureYears <= 0 {
		return fmt.Errorf("%w: tenure must be a positive number of years", ErrInvalidInput)
	}
	months := math.Round(input.TenureYears * 12)
	if months < MinTenureMonths || months > MaxTenureMonths {
		return fmt.Errorf("%w: tenure must be between %d and %d months", ErrInvalidInput, MinTenureMonths, MaxTenureMonths)
	}
	return nil
}

// Recent lists saved projections, newest first.
func (s *ProjectionService) Recent(ctx context.Context, limit int) ([]domain.ProjectionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.repo.Recent(ctx, limit)
}
