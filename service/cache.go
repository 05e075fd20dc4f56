package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"scheme-details/repository"
)

func navCacheKey(code string) string      { return "scheme:" + code + ":nav" }
func overviewCacheKey(code string) string { return "scheme:" + code + ":overview" }

// cached returns the value under key, or calls load and stores its result.
// Cache failures are logged and never fail the call.
func cached[T any](
	ctx context.Context,
	cache repository.CacheRepository,
	log zerolog.Logger,
	key string,
	ttl time.Duration,
	load func(context.Context) (T, error),
) (T, error) {
	if raw, ok := cache.Get(ctx, key); ok {
		var v T
		err := msgpack.Unmarshal(raw, &v)
		if err == nil {
			return v, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	raw, err := msgpack.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return v, nil
	}
	if err := cache.Set(ctx, key, raw, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to write cache entry")
	}
	return v, nil
}
