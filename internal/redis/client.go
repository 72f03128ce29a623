package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Catalog projection cache. Keys are derived from the catalog filters; any
// stock mutation drops the whole keyspace rather than tracking which filters
// a batch appears under.

func (c *Client) SetCatalog(key string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog data: %w", err)
	}

	return c.rdb.Set(ctx, "catalog:"+key, jsonData, ttl).Err()
}

// GetCatalog reports whether the key was present; a cache miss is not an error.
func (c *Client) GetCatalog(key string, dest interface{}) (bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "catalog:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get catalog data: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal catalog data: %w", err)
	}
	return true, nil
}

// InvalidateCatalog walks the catalog keyspace with SCAN; KEYS would hold the
// server for the whole sweep on a large keyspace.
func (c *Client) InvalidateCatalog() error {
	ctx := context.Background()
	iter := c.rdb.Scan(ctx, 0, "catalog:*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete catalog keys: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan catalog keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
