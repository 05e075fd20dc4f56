package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"scheme-details/domain"
	"scheme-details/repository"
)

// NavService builds NAV charts. The series is cached; the window is always
// recomputed.
type NavService struct {
	repo  repository.SchemeRepository
	cache repository.CacheRepository
	ttl   time.Duration
	log   zerolog.Logger
}

func NewNavService(
	repo repository.SchemeRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	log zerolog.Logger,
) *NavService {
	return &NavService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log.With().Str("component", "nav").Logger(),
	}
}

func (s *NavService) Series(ctx context.Context, code string) ([]domain.NavSample, error) {
	return cached(ctx, s.cache, s.log, navCacheKey(code), s.ttl, func(ctx context.Context) ([]domain.NavSample, error) {
		return s.repo.NavSeries(ctx, code)
	})
}

// Chart windows the scheme's NAV series for period on a width x height plot.
func (s *NavService) Chart(
	ctx context.Context,
	code string,
	period domain.Period,
	width, height float64,
) (domain.NavChart, error) {
	if !period.Valid() {
		return domain.NavChart{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	series, err := s.Series(ctx, code)
	if err != nil {
		return domain.NavChart{}, err
	}

	window := Window(series, period, width, height)
	chart := domain.NavChart{
		SchemeCode:   code,
		Period:       period,
		Width:        width,
		Height:       height,
		Window:       window,
		PeriodReturn: PeriodReturn(window.Sliced),
		Stats:        SeriesStats(window.Sliced),
	}
	if n := len(window.Sliced); n > 0 {
		latest := window.Sliced[n-1]
		chart.Latest = &latest
	}
	return chart, nil
}
