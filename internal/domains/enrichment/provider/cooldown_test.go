package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	emodel "mediashelf-backend/internal/domains/enrichment/model"
)

// memCache is an in-memory cache.Cache with TTL bookkeeping but no expiry
// goroutine; entries expire lazily on Get.
type memCache struct {
	values  map[string]string
	expires map[string]time.Time
	failing bool
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string]string), expires: make(map[string]time.Time)}
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if m.failing {
		return false, errors.New("redis down")
	}
	v, ok := m.values[key]
	if !ok || time.Now().After(m.expires[key]) {
		return false, nil
	}
	*dest.(*string) = v
	return true, nil
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.failing {
		return errors.New("redis down")
	}
	m.values[key] = value.(string)
	m.expires[key] = time.Now().Add(ttl)
	return nil
}

func (m *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *memCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.values[key]
	return ok, nil
}

func (m *memCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	return time.Until(m.expires[key]), nil
}

func (m *memCache) Ping(ctx context.Context) error { return nil }

func TestCooldownArmAndActive(t *testing.T) {
	store := NewCooldownStore(newMemCache())
	ctx := context.Background()

	_, active := store.Active(ctx, "tmdb")
	assert.False(t, active)

	store.Arm(ctx, &emodel.RateLimitError{
		Provider:   "tmdb",
		Message:    "Rate limited, try again in a minute",
		RetryAfter: 30 * time.Second,
	})

	msg, active := store.Active(ctx, "tmdb")
	assert.True(t, active)
	assert.Equal(t, "Rate limited, try again in a minute", msg)

	// Cooldowns are per provider.
	_, active = store.Active(ctx, "omdb")
	assert.False(t, active)
}

func TestCooldownIsBestEffort(t *testing.T) {
	ctx := context.Background()

	// Broken Redis never blocks: arming swallows the error, lookups miss.
	broken := NewCooldownStore(&memCache{failing: true})
	broken.Arm(ctx, &emodel.RateLimitError{Provider: "itunes", Message: "quota"})
	_, active := broken.Active(ctx, "itunes")
	assert.False(t, active)

	// So does running without Redis at all.
	none := NewCooldownStore(nil)
	none.Arm(ctx, &emodel.RateLimitError{Provider: "itunes", Message: "quota"})
	_, active = none.Active(ctx, "itunes")
	assert.False(t, active)
}
