package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/autoxpress/partsearch/app/ranking"
)

// ResultTTL is how long a ranked result set stays valid. Marketplace prices
// move slowly enough that half an hour of staleness is acceptable.
const ResultTTL = 30 * time.Minute

// Cache stores ranked search results in Redis. A nil *Cache is a valid
// no-op cache, so the server runs fine without Redis configured.
type Cache struct {
	client *redis.Client
}

func New(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis", "addr", addr)

	return &Cache{client: client}, nil
}

// SearchKey generates a consistent cache key for a canonical query string.
func SearchKey(canonicalQuery string) string {
	hash := sha256.Sum256([]byte(canonicalQuery))
	return fmt.Sprintf("search:%x", hash[:8])
}

// GetResults returns the cached ranked listings for a key, with a miss
// reported as (nil, false, nil). Corrupt entries are deleted and treated as
// misses rather than surfaced as errors.
func (c *Cache) GetResults(ctx context.Context, key string) ([]ranking.RankedListing, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	var results []ranking.RankedListing
	if err := json.Unmarshal(data, &results); err != nil {
		c.client.Del(ctx, key)
		return nil, false, nil
	}

	return results, true, nil
}

// SetResults stores ranked listings under a key with the standard TTL.
func (c *Cache) SetResults(ctx context.Context, key string, results []ranking.RankedListing) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results for key %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ResultTTL).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Health reports connection status for the /health endpoint.
func (c *Cache) Health(ctx context.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{"status": "disabled", "type": "redis"}
	}

	health := map[string]interface{}{
		"status": "healthy",
		"type":   "redis",
	}

	if err := c.client.Ping(ctx).Err(); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
		return health
	}

	if dbSize, err := c.client.DBSize(ctx).Result(); err == nil {
		health["key_count"] = dbSize
	}

	return health
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
