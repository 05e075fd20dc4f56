package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(3, time.Minute, func() time.Time { return now })

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "clients have separate buckets")

	now = now.Add(59 * time.Second)
	assert.False(t, rl.Allow("1.2.3.4"))

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(1, time.Minute, func() time.Time { return now })

	rl.Allow("a")
	now = now.Add(30 * time.Minute)
	rl.Allow("b")
	assert.Equal(t, 2, rl.clientCount())

	now = now.Add(bucketCleanupThreshold)
	rl.cleanup()
	assert.Equal(t, 1, rl.clientCount())
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
