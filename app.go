package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"scheme-details/config"
	"scheme-details/domain"
	httpLayer "scheme-details/http"
	"scheme-details/repository"
	"scheme-details/service"
)

// app holds the wired repositories and services shared by every command.
type app struct {
	cfg         *config.Config
	log         zerolog.Logger
	schemes     repository.SchemeRepository
	projections repository.ProjectionRepository
	cache       repository.CacheRepository
	store       *repository.SQLiteStore // nil with the memory driver

	projection *service.ProjectionService
	nav        *service.NavService
	scheme     *service.SchemeService

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	if err := a.openStorage(ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.openCache(ctx)

	a.projection = service.NewProjectionService(service.ProjectionConfig{
		AnnualRate: cfg.Returns.AnnualRate,
		SIP:        bounds(cfg.Returns.SIP),
		LumpSum:    bounds(cfg.Returns.LumpSum),
	}, a.projections, log)
	a.nav = service.NewNavService(a.schemes, a.cache, cfg.Redis.TTL, log)
	a.scheme = service.NewSchemeService(a.schemes, a.cache, cfg.Redis.TTL, log)

	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	bundles, err := repository.LoadEmbeddedBundles()
	if err != nil {
		return fmt.Errorf("load embedded bundles: %w", err)
	}
	if a.cfg.Storage.BundleFile != "" {
		b, err := repository.ReadBundleFile(a.cfg.Storage.BundleFile)
		if err != nil {
			return fmt.Errorf("read bundle %s: %w", a.cfg.Storage.BundleFile, err)
		}
		bundles = append(bundles, b)
	}

	switch a.cfg.Storage.Driver {
	case "sqlite":
		store, err := repository.OpenSQLite(ctx, a.cfg.Storage.Path)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, store.Close)
		a.store = store

		// seed schemes that have never been imported
		for _, b := range bundles {
			_, err := store.Scheme(ctx, b.Scheme.Code)
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrSchemeNotFound) {
				return err
			}
			if err := store.Import(ctx, b); err != nil {
				return fmt.Errorf("seed %s: %w", b.Scheme.Code, err)
			}
			a.log.Info().Str("scheme", b.Scheme.Code).Msg("seeded scheme bundle")
		}
		a.schemes = store
		a.projections = store

	default:
		repo, err := repository.NewBundleRepository(bundles...)
		if err != nil {
			return err
		}
		a.schemes = repo
		a.projections = repository.NewProjectionRepositoryMemory()
	}

	a.log.Debug().Str("driver", a.cfg.Storage.Driver).Msg("storage ready")
	return nil
}

// openCache falls back to the in-process cache when redis is disabled or
// unreachable.
func (a *app) openCache(ctx context.Context) {
	if !a.cfg.Redis.Enabled {
		a.cache = repository.NewMockCache()
		return
	}

	rc := repository.NewRedisCache(repository.RedisOptions{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		a.log.Warn().Err(err).Str("addr", a.cfg.Redis.Addr).Msg("redis unavailable, using in-memory cache")
		_ = rc.Close()
		a.cache = repository.NewMockCache()
		return
	}

	a.closers = append(a.closers, rc.Close)
	a.cache = rc
	a.log.Info().Str("addr", a.cfg.Redis.Addr).Msg("connected to redis")
}

func (a *app) server(limiter *httpLayer.RateLimiter) *httpLayer.Server {
	return httpLayer.NewServer(httpLayer.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
		Log:         a.log,
		Returns:     httpLayer.NewReturnsHandler(a.projection, a.log),
		Schemes:     httpLayer.NewSchemeHandler(a.scheme, a.nav, a.log),
		Limiter:     limiter,
	})
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn().Err(err).Msg("close failed")
		}
	}
	a.closers = nil
}

func bounds(r config.AmountRange) domain.AmountBounds {
	return domain.AmountBounds{Min: r.Min, Max: r.Max, Step: r.Step}
}
