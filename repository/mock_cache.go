package repository

import (
	"context"
	"sync"
	"time"
)

type mockEntry struct {
	value     []byte
	expiresAt time.Time
}

// MockCache is an in-process CacheRepository used when redis is disabled and
// in tests.
type MockCache struct {
	mu   sync.Mutex
	data map[string]mockEntry
	now  func() time.Time
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]mockEntry),
		now:  time.Now,
	}
}

func (m *MockCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.data, key)
		return nil, false
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true
}

func (m *MockCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := mockEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// Len reports how many keys are held, expired or not.
func (m *MockCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
