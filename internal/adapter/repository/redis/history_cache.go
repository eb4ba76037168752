package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// HistoryCache implements usecase.HistoryCache using Redis. Keys are
// prefixed and shaped as "history:<accountID>:<yyyy-mm>", so invalidating
// an account is a SCAN over its key prefix.
type HistoryCache struct {
	client *redis.Client
	prefix string
}

// NewHistoryCache creates a new HistoryCache.
func NewHistoryCache(client *redis.Client) *HistoryCache {
	return &HistoryCache{
		client: client,
		prefix: "cache:",
	}
}

// Get retrieves a cached series by key.
func (c *HistoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, c.prefix+key).Bytes()
}

// Set stores a serialized series with TTL.
func (c *HistoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// DeleteByAccount removes every cached month for the account.
func (c *HistoryCache) DeleteByAccount(ctx context.Context, accountID string) error {
	pattern := c.prefix + "history:" + accountID + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
