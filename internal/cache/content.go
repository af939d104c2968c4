// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content.go provides a Redis-backed cache for content fetched from the
// GitHub repository. Reading a file through the contents API costs a
// network round-trip per request, so list and detail reads store their
// serialized results here and writes invalidate the affected domain.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// contentKeyPrefix is the Redis key prefix for cached content.
	contentKeyPrefix = "content:"

	// DefaultContentTTL is how long a content entry stays cached.
	DefaultContentTTL = 5 * time.Minute
)

// ContentCache manages serialized content caching in Redis. Failures are
// logged and treated as misses; the content service always has the GitHub
// API as the source of truth.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a content cache backed by the given Redis client.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl == 0 {
		ttl = DefaultContentTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

// Get retrieves a cached entry. Returns false on miss or error.
func (cc *ContentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, contentKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("content cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("content cache hit", "key", key)
	return val, true
}

// Set stores a serialized entry with the configured TTL.
func (cc *ContentCache) Set(ctx context.Context, key string, data []byte) {
	if err := cc.client.Set(ctx, contentKeyPrefix+key, data, cc.ttl).Err(); err != nil {
		slog.Warn("content cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single entry.
func (cc *ContentCache) Invalidate(ctx context.Context, key string) {
	if err := cc.client.Del(ctx, contentKeyPrefix+key).Err(); err != nil {
		slog.Warn("content cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("content cache invalidated", "key", key)
}

// InvalidateDomain removes every entry under a domain prefix, e.g. all
// cached post lists and bodies after a post write.
func (cc *ContentCache) InvalidateDomain(ctx context.Context, domain string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, contentKeyPrefix+domain+":*", 100).Result()
		if err != nil {
			slog.Warn("content cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("content cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("content cache domain cleared", "domain", domain, "deleted", deleted)
	}
}

// DomainKey builds a cache key scoped to a domain, e.g. "posts:index" or
// "posts:my-slug". InvalidateDomain relies on this shape.
func DomainKey(domain, name string) string {
	return domain + ":" + name
}
