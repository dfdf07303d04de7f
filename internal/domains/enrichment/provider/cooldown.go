package provider

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	emodel "mediashelf-backend/internal/domains/enrichment/model"
	"mediashelf-backend/pkg/cache"
)

const (
	cooldownKeyPrefix  = "enrichment:cooldown:"
	defaultCooldownTTL = time.Minute
)

// CooldownStore remembers an active rate-limit cooldown per upstream provider
// in Redis, so that once one request hits a 429 every subsequent call during
// the window short-circuits with the same signal instead of spending quota.
// All operations are best-effort: a broken Redis never blocks a fetch.
type CooldownStore struct {
	cache cache.Cache
}

func NewCooldownStore(c cache.Cache) *CooldownStore {
	return &CooldownStore{cache: c}
}

// Active returns the stored user-facing message when a cooldown is running.
func (s *CooldownStore) Active(ctx context.Context, providerName string) (string, bool) {
	if s == nil || s.cache == nil {
		return "", false
	}
	var msg string
	found, err := s.cache.Get(ctx, cooldownKeyPrefix+providerName, &msg)
	if err != nil {
		log.Warn().Err(err).Str("provider", providerName).Msg("cooldown lookup failed")
		return "", false
	}
	return msg, found
}

// Arm records a cooldown after an upstream 429. TTL falls back to a minute
// when the upstream gave no Retry-After hint.
func (s *CooldownStore) Arm(ctx context.Context, rle *emodel.RateLimitError) {
	if s == nil || s.cache == nil || rle == nil {
		return
	}
	ttl := rle.RetryAfter
	if ttl <= 0 {
		ttl = defaultCooldownTTL
	}
	if err := s.cache.Set(ctx, cooldownKeyPrefix+rle.Provider, rle.Message, ttl); err != nil {
		log.Warn().Err(err).Str("provider", rle.Provider).Msg("cooldown arm failed")
	}
}
