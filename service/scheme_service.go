package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"scheme-details/domain"
	"scheme-details/repository"
)

type SchemeService struct {
	repo  repository.SchemeRepository
	cache repository.CacheRepository
	ttl   time.Duration
	log   zerolog.Logger
}

func NewSchemeService(
	repo repository.SchemeRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	log zerolog.Logger,
) *SchemeService {
	return &SchemeService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log.With().Str("component", "scheme").Logger(),
	}
}

// Overview gathers everything the scheme screen shows apart from the NAV
// chart.
func (s *SchemeService) Overview(ctx context.Context, code string) (domain.SchemeOverview, error) {
	overview, err := cached(ctx, s.cache, s.log, overviewCacheKey(code), s.ttl, s.loadOverview(code))
	if err != nil {
		return domain.SchemeOverview{}, err
	}
	overview.Riskometer = NewRiskometer(overview.Details.RiskLevel)
	return overview, nil
}

func (s *SchemeService) loadOverview(code string) func(context.Context) (domain.SchemeOverview, error) {
	return func(ctx context.Context) (domain.SchemeOverview, error) {
		var overview domain.SchemeOverview

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			details, err := s.repo.Scheme(gctx, code)
			if err != nil {
				return err
			}
			overview.Details = details
			return nil
		})
		g.Go(func() error {
			analysis, err := s.repo.ReturnAnalysis(gctx, code)
			if err != nil {
				return fmt.Errorf("return analysis: %w", err)
			}
			overview.ReturnAnalysis = analysis
			return nil
		})
		g.Go(func() error {
			funds, err := s.repo.SimilarFunds(gctx, code)
			if err != nil {
				return fmt.Errorf("similar funds: %w", err)
			}
			overview.SimilarFunds = funds
			return nil
		})

		if err := g.Wait(); err != nil {
			return domain.SchemeOverview{}, err
		}
		return overview, nil
	}
}

func (s *SchemeService) Risk(ctx context.Context, code string) (domain.Riskometer, error) {
	overview, err := s.Overview(ctx, code)
	if err != nil {
		return domain.Riskometer{}, err
	}
	return overview.Riskometer, nil
}
