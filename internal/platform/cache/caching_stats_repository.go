package cache

import (
	"context"
	"fmt"
	"time"

	"account_backend/internal/feature/user/domain/entity"
	"account_backend/internal/feature/user/usecase"
)

// CachingStatsRepository decorates a StatsRepository with Redis caching.
// The dashboard tolerates data up to ttl old; new registrations invalidate
// it through InvalidatingUserRepository.
type CachingStatsRepository struct {
	inner     usecase.StatsRepository
	cache     *Cache
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingStatsRepository implements StatsRepository.
var _ usecase.StatsRepository = (*CachingStatsRepository)(nil)

// NewCachingStatsRepository decorates a StatsRepository with caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "stats".
func NewCachingStatsRepository(c *Cache, ttl time.Duration, inner usecase.StatsRepository, namespace string) *CachingStatsRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "stats"
	}
	return &CachingStatsRepository{
		inner:     inner,
		cache:     c,
		ttl:       ttl,
		namespace: namespace,
	}
}

// CreatedBetween returns cached creation times for the window.
func (r *CachingStatsRepository) CreatedBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	key := fmt.Sprintf("%s:created:%d:%d", r.namespace, from.Unix(), to.Unix())
	return GetOrLoadJSON(ctx, r.cache, key, r.ttl, func(ctx context.Context) ([]time.Time, error) {
		return r.inner.CreatedBetween(ctx, from, to)
	})
}

// CountAll returns the cached total.
func (r *CachingStatsRepository) CountAll(ctx context.Context) (int64, error) {
	return GetOrLoadJSON(ctx, r.cache, r.namespace+":count", r.ttl, r.inner.CountAll)
}

// Invalidate drops every cached entry of this namespace.
func (r *CachingStatsRepository) Invalidate(ctx context.Context) error {
	return r.cache.DeleteByPattern(ctx, r.namespace+":*")
}

// InvalidatingUserRepository invalidates the stats cache after every created user.
type InvalidatingUserRepository struct {
	usecase.UserRepository
	stats *CachingStatsRepository
}

// NewInvalidatingUserRepository wraps inner.
func NewInvalidatingUserRepository(inner usecase.UserRepository, stats *CachingStatsRepository) *InvalidatingUserRepository {
	return &InvalidatingUserRepository{UserRepository: inner, stats: stats}
}

// Create persists the user, then invalidates the stats cache (best effort).
func (r *InvalidatingUserRepository) Create(ctx context.Context, u entity.User) (entity.User, error) {
	created, err := r.UserRepository.Create(ctx, u)
	if err != nil {
		return entity.User{}, err
	}
	_ = r.stats.Invalidate(ctx)
	return created, nil
}
