// Package redis provides the report cache and idempotency key storage.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache implements usecase.ReportCache. Values are serialized reports;
// a miss surfaces as redis.Nil, which callers treat as any other miss.
type ReportCache struct {
	client *redis.Client
	prefix string
}

// NewReportCache creates a new ReportCache.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{
		client: client,
		prefix: "report:",
	}
}

// Get retrieves a cached report by id.
func (c *ReportCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.prefix+key).Result()
}

// Set stores a serialized report with TTL.
func (c *ReportCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete invalidates a cached report.
func (c *ReportCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
