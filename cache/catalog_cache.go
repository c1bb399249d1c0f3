package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CatalogCache keeps short-lived copies of upstream list responses so that
// bursts of now-playing / airing-today traffic don't hammer the catalog API.
// A miss is never an error for callers; they just go upstream.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache wraps a connected Redis client. A nil client disables the
// cache entirely, which keeps the proxy usable when Redis is down.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func catalogKey(endpoint string) string {
	return fmt.Sprintf("catalog:%s", endpoint)
}

// Get loads a cached list payload into out. The bool reports whether the key
// was present and decodable.
func (c *CatalogCache) Get(ctx context.Context, endpoint string, out interface{}) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	data, err := c.client.Get(ctx, catalogKey(endpoint)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read catalog cache for %s: %w", endpoint, err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return false, nil
	}
	return true, nil
}

// Set stores a list payload under the endpoint key with the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, endpoint string, payload interface{}) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog payload for %s: %w", endpoint, err)
	}

	if err := c.client.Set(ctx, catalogKey(endpoint), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog cache for %s: %w", endpoint, err)
	}
	return nil
}
