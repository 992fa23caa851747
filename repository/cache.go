package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ListCache caches listing pages in Redis. A nil *ListCache or a cache built
// with a nil client is a no-op, so callers never need to check.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewListCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *ListCache {
	return &ListCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *ListCache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Get decodes the cached value into dest and reports whether it was found.
func (c *ListCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.enabled() {
		return false
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

func (c *ListCache) Set(ctx context.Context, key string, value interface{}) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Invalidate deletes every key starting with prefix.
func (c *ListCache) Invalidate(ctx context.Context, prefix string) {
	if !c.enabled() {
		return
	}
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Str("prefix", prefix).Msg("cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidate failed")
	}
}
