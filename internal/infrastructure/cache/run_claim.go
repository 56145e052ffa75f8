// Package cache holds short-lived shared state: run claims that keep a
// scheduled job to one instance per period.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultClaimPrefix = "sitinfra:run:"

// RedisRunClaimer grants run keys through Redis so that several API
// instances agree on which one runs a job
type RedisRunClaimer struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRunClaimer creates a claimer on an existing Redis client. The
// client is owned by the caller.
func NewRedisRunClaimer(client *redis.Client, keyPrefix string) *RedisRunClaimer {
	if keyPrefix == "" {
		keyPrefix = defaultClaimPrefix
	}
	return &RedisRunClaimer{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Claim returns true for the first caller of key until ttl elapses.
// SETNX makes the check and the write one atomic step.
func (c *RedisRunClaimer) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, c.key(key), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim run %s: %w", key, err)
	}
	return ok, nil
}

// Release drops a claim so the run can be retried
func (c *RedisRunClaimer) Release(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to release run %s: %w", key, err)
	}
	return nil
}

func (c *RedisRunClaimer) key(key string) string {
	return c.keyPrefix + key
}
