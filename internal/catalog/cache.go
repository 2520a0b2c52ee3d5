package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"gig-discovery/internal/common/database"
	"gig-discovery/internal/common/logger"
	"gig-discovery/internal/common/metrics"
)

// ResultCache memoizes serialized discovery responses in redis. Every
// failure path degrades to a miss: the caller recomputes and the request
// still succeeds without redis.
type ResultCache struct {
	redis *database.RedisClient
	ttl   time.Duration
	log   logger.Logger
}

// NewResultCache creates a cache with the given entry lifetime.
func NewResultCache(rdb *database.RedisClient, ttl time.Duration, log logger.Logger) *ResultCache {
	return &ResultCache{redis: rdb, ttl: ttl, log: log}
}

// Get unmarshals the cached value for key into dest and reports whether it
// was present.
func (c *ResultCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.redis == nil {
		return false
	}

	raw, err := c.redis.Get(ctx, key)
	if err == redis.Nil {
		metrics.ResultCacheMisses.WithLabelValues("redis").Inc()
		return false
	}
	if err != nil {
		metrics.ResultCacheMisses.WithLabelValues("redis").Inc()
		c.log.Warn("result cache read failed, recomputing", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.log.Warn("result cache entry corrupt, recomputing", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	metrics.ResultCacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set stores value under key for the configured TTL. Failures are logged
// and swallowed.
func (c *ResultCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.redis == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("result cache marshal failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl); err != nil {
		c.log.Warn("result cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Invalidate drops cached entries, used after an index rebuild.
func (c *ResultCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.redis == nil || len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...); err != nil {
		c.log.Warn("result cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
