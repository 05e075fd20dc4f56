package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheme-details/config"
	"scheme-details/repository"
)

const embeddedScheme = "meridian-flexi-cap"

func testConfig(driver, path string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, RateLimit: 5, RateWindow: time.Minute},
		Returns: config.ReturnsConfig{
			AnnualRate: 12,
			SIP:        config.AmountRange{Min: 500, Max: 100000, Step: 500},
			LumpSum:    config.AmountRange{Min: 5000, Max: 1000000, Step: 5000},
		},
		Storage: config.StorageConfig{Driver: driver, Path: path},
		Redis:   config.RedisConfig{Addr: "localhost:6379", TTL: time.Minute},
	}
}

func TestNewApp_SQLiteSeedsEmbeddedBundles(t *testing.T) {
	ctx := context.Background()

	a, err := newApp(ctx, testConfig("sqlite", ":memory:"), zerolog.New(io.Discard))
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.store)
	details, err := a.schemes.Scheme(ctx, embeddedScheme)
	require.NoError(t, err)
	assert.Equal(t, embeddedScheme, details.Code)

	chart, err := a.nav.Chart(ctx, embeddedScheme, "1Y", 300, 200)
	require.NoError(t, err)
	assert.Len(t, chart.Window.Points, 12)
}

func TestNewApp_SQLiteKeepsImportedScheme(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "schemed.db")

	bundles, err := repository.LoadEmbeddedBundles()
	require.NoError(t, err)
	b := bundles[0]
	b.Scheme.Name = "Renamed By Import"

	store, err := repository.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Import(ctx, b))
	require.NoError(t, store.Close())

	a, err := newApp(ctx, testConfig("sqlite", path), zerolog.New(io.Discard))
	require.NoError(t, err)
	defer a.Close()

	details, err := a.schemes.Scheme(ctx, b.Scheme.Code)
	require.NoError(t, err)
	assert.Equal(t, "Renamed By Import", details.Name)
}

func TestNewApp_MemoryDriver(t *testing.T) {
	a, err := newApp(context.Background(), testConfig("memory", ""), zerolog.New(io.Discard))
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.store)
	assert.IsType(t, &repository.BundleRepository{}, a.schemes)
	assert.IsType(t, &repository.ProjectionRepositoryMemory{}, a.projections)
	assert.IsType(t, &repository.MockCache{}, a.cache)
}

func TestNewApp_UnreachableRedisFallsBack(t *testing.T) {
	cfg := testConfig("memory", "")
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = "127.0.0.1:1"

	a, err := newApp(context.Background(), cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &repository.MockCache{}, a.cache)
	assert.Empty(t, a.closers)

	overview, err := a.scheme.Overview(context.Background(), embeddedScheme)
	require.NoError(t, err)
	assert.Equal(t, embeddedScheme, overview.Details.Code)
}

func TestNewApp_MissingBundleFile(t *testing.T) {
	cfg := testConfig("memory", "")
	cfg.Storage.BundleFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := newApp(context.Background(), cfg, zerolog.New(io.Discard))
	assert.Error(t, err)
}
