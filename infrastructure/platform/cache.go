package platform

import (
	"context"
	"fmt"
	"log/slog"
	"noping/contract"
	"noping/domain"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// CachedResolver keeps resolved profiles in memory for a short while.
// A message mentioning the same user twice, or an author relaying several
// messages in a row, costs a single users.profile.get call.
type CachedResolver struct {
	next  contract.IdentityResolver
	cache *ristretto.Cache[string, domain.Profile]
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachedResolver(next contract.IdentityResolver, ttl time.Duration, maxProfiles int64, log *slog.Logger) (*CachedResolver, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, domain.Profile]{
		NumCounters: maxProfiles * 10,
		MaxCost:     maxProfiles,
		BufferItems: 64,
		// each profile costs 1, MaxCost is a number of profiles
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("profile cache: %w", err)
	}
	return &CachedResolver{next: next, cache: cache, ttl: ttl, log: log}, nil
}

func (r *CachedResolver) Resolve(ctx context.Context, userID string) (domain.Profile, error) {
	if profile, ok := r.cache.Get(userID); ok {
		return profile, nil
	}
	profile, err := r.next.Resolve(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	if !r.cache.SetWithTTL(userID, profile, 1, r.ttl) {
		r.log.Debug("Profile not cached", "user_id", userID)
	}
	return profile, nil
}

// Wait blocks until pending writes are visible to Resolve.
func (r *CachedResolver) Wait() {
	r.cache.Wait()
}

func (r *CachedResolver) Close() {
	r.cache.Close()
}
