package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lookup results are cached aggressively: building attributes change on
// renovation timescales, not request timescales.
const lookupCacheTTL = 24 * time.Hour

// Client wraps the Redis client with the property-lookup cache.
type Client struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client and verifies connectivity.
func NewRedisClient(host, port, password string, db int) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{client: client}, nil
}

// lookupCacheKey normalizes the free-text query so trivially different
// spellings of the same hotel share a cache entry.
func lookupCacheKey(query string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(query), " "))
	sum := sha256.Sum256([]byte(normalized))
	return "lookup:" + hex.EncodeToString(sum[:16])
}

// GetCachedLookup returns the cached lookup payload for a query, or "" on a
// miss or any cache error.
func (c *Client) GetCachedLookup(ctx context.Context, query string) string {
	val, err := c.client.Get(ctx, lookupCacheKey(query)).Result()
	if err != nil {
		return ""
	}
	return val
}

// SetCachedLookup stores a lookup payload. Errors are returned for logging
// but callers treat the cache as best-effort.
func (c *Client) SetCachedLookup(ctx context.Context, query, payload string) error {
	return c.client.Set(ctx, lookupCacheKey(query), payload, lookupCacheTTL).Err()
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}
