// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shukatsu_backend/internal/feature/trend/domain/entity"
	"shukatsu_backend/internal/feature/trend/usecase"
)

// CachingTrendRepository decorates a TrendRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingTrendRepository struct {
	inner     usecase.TrendRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingTrendRepository decorates a TrendRepository with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "trends".
func NewCachingTrendRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TrendRepository, namespace string) *CachingTrendRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "trends"
	}
	return &CachingTrendRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Save persists the summary and invalidates the cached entry for the user.
func (c *CachingTrendRepository) Save(ctx context.Context, summary *entity.TrendSummary) error {
	// First save to the underlying repository (MySQL)
	if err := c.inner.Save(ctx, summary); err != nil {
		return err
	}
	// Exit early if Redis is not configured
	if c.rdb == nil {
		return nil
	}
	// Best effort: don't fail if cache invalidation fails
	_ = c.rdb.Del(ctx, c.cacheKey(summary.UserID)).Err()
	return nil
}

// FindByUser retrieves the summary, checking cache first then falling back to the database.
func (c *CachingTrendRepository) FindByUser(ctx context.Context, userID uint) (*entity.TrendSummary, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByUser(ctx, userID)
	}

	key := c.cacheKey(userID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.TrendSummary
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates the per-user cache key for the trend summary singleton.
func (c *CachingTrendRepository) cacheKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", c.namespace, userID)
}
