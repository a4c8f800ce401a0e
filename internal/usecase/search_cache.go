package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SearchCache stores listing pages and the fill locks that keep
// concurrent misses for one key from all hitting Postgres. A nil cache
// or a cache whose backend is down behaves as a permanent miss.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// SetIfNotExists reports whether the caller acquired key.
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}

// InvalidateSearchCache drops every cached listing page.
func InvalidateSearchCache(ctx context.Context, cache SearchCache, logger *zap.Logger) {
	if cache == nil {
		return
	}
	n, err := cache.DeleteByPrefix(ctx, SearchCachePrefix)
	if err != nil {
		logger.Warn("search cache invalidation failed", zap.Error(err))
		return
	}
	logger.Debug("search cache invalidated", zap.Int("keys", n))
}
