package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	trendadapters "shukatsu_backend/internal/feature/trend/adapters"
	"shukatsu_backend/internal/feature/trend/usecase"
	"shukatsu_backend/internal/platform/cache"
)

// trendCacheTTL はトレンドサマリーのキャッシュ保持時間です。
// 再分析時は保存と同時に無効化されるため、長めでも整合は保たれます。
const trendCacheTTL = time.Hour

// NewTrendRepository creates a TrendRepository implementation.
// If Redis is available, the MySQL repository is wrapped with a caching decorator.
func NewTrendRepository(rdb *redis.Client, db *gorm.DB) usecase.TrendRepository {
	inner := trendadapters.NewTrendRepository(db)
	if rdb == nil {
		return inner
	}
	return cache.NewCachingTrendRepository(rdb, trendCacheTTL, inner, "trends")
}
