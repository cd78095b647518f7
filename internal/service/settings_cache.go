package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisSettingsKeyPrefix namespaces every cached settings read.
	RedisSettingsKeyPrefix = "settings:"

	redisCacheTimeout = 2 * time.Second
	invalidateBatch   = 100

	// SettingsCacheKeyAll caches the full settings list.
	SettingsCacheKeyAll = "all"
)

// SettingsKeyCacheKey caches a single setting looked up by setting_key.
func SettingsKeyCacheKey(key string) string {
	return "key:" + key
}

// SettingsCategoryCacheKey caches the settings of one category.
func SettingsCategoryCacheKey(category string) string {
	return "category:" + category
}

// SettingsCache is a read-through cache for settings queries. Redis
// failures are logged and treated as misses so the database stays the
// source of truth.
type SettingsCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewSettingsCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) *SettingsCache {
	return &SettingsCache{client: client, ttl: ttl, log: log}
}

// Get decodes the cached value for key into dest and reports whether it was found.
func (c *SettingsCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, RedisSettingsKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read settings cache %s: %+v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warnf("Failed to decode settings cache %s: %+v", key, err)
		return false
	}
	return true
}

func (c *SettingsCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("Failed to encode settings cache %s: %+v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := c.client.Set(ctx, RedisSettingsKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write settings cache %s: %+v", key, err)
	}
}

// SetMany writes every entry in one pipeline round trip.
func (c *SettingsCache) SetMany(ctx context.Context, entries map[string]interface{}) error {
	if c == nil || c.client == nil || len(entries) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	pipe := c.client.TxPipeline()
	for key, value := range entries {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode settings cache %s: %w", key, err)
		}
		pipe.Set(ctx, RedisSettingsKeyPrefix+key, raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write settings cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached settings read. Keys are removed in
// batches, each batch in one pipeline round trip.
func (c *SettingsCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	iter := c.client.Scan(ctx, 0, RedisSettingsKeyPrefix+"*", invalidateBatch).Iterator()
	batch := make([]string, 0, invalidateBatch)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		pipe := c.client.Pipeline()
		pipe.Del(ctx, batch...)
		if _, err := pipe.Exec(ctx); err != nil {
			c.log.Warnf("Failed to invalidate settings cache: %+v", err)
		}
		batch = batch[:0]
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == invalidateBatch {
			flush()
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warnf("Failed to scan settings cache: %+v", err)
	}
	flush()
}
