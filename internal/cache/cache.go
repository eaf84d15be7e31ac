// Package cache provides a best-effort Redis cache for hot read paths.
// The cache degrades gracefully: when Redis is unreachable every operation
// becomes a no-op, so callers never branch on availability.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/StavLobel/whats-the-chance-game/internal/logger"
)

// Cache wraps a Redis client. A nil *Cache or a Cache whose connection
// failed at startup behaves as a cache that always misses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a cache with the given default TTL.
// A connection failure is logged and yields a disabled cache rather than
// an error, the service runs fine without caching.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) *Cache {
	log := logger.FromContext(ctx)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  DialTimeout,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn(LogMsgUnavailable, "addr", addr, "error", err)
		_ = client.Close()
		return &Cache{ttl: ttl}
	}

	log.Info(LogMsgConnected, "addr", addr, "db", db)
	return &Cache{client: client, ttl: ttl}
}

// Available reports whether the cache is backed by a live connection
func (c *Cache) Available() bool {
	return c != nil && c.client != nil
}

// GetJSON loads the entry at key into dest. Returns false on a miss, on a
// decode failure, or when the cache is disabled.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if !c.Available() {
		return false
	}
	log := logger.FromContext(ctx)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn(LogMsgGetFailed, "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn(LogMsgDecodeFailed, "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON stores value at key with the cache's default TTL. Best effort,
// failures are logged and swallowed.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if !c.Available() {
		return
	}
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn(LogMsgSetFailed, "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warn(LogMsgSetFailed, "key", key, "error", err)
	}
}

// Delete removes keys, typically to invalidate after a write. Best effort.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Available() || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgDeleteFailed, "keys", keys, "error", err)
	}
}

// DeleteByPrefix removes every key under prefix using SCAN, so listing
// caches with parameterized keys can be invalidated in one call.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) {
	if !c.Available() {
		return
	}
	log := logger.FromContext(ctx)

	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn(LogMsgDeleteFailed, "prefix", prefix, "error", err)
		return
	}
	if len(keys) > 0 {
		c.Delete(ctx, keys...)
	}
}

// Ping reports connection health for readiness checks
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Available() {
		return errors.New("cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection
func (c *Cache) Close(ctx context.Context) {
	if !c.Available() {
		return
	}
	log := logger.FromContext(ctx)
	if err := c.client.Close(); err != nil {
		log.Warn(LogMsgCloseFailed, "error", err)
		return
	}
	log.Info(LogMsgConnectionClosed)
}

// TopNumbersKey builds the cache key for a top-numbers listing
func TopNumbersKey(sortBy string, limit int) string {
	return fmt.Sprintf("%s:%s:%d", KeyTopNumbersPrefix, sortBy, limit)
}
