package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"commercial-paper-verifier/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// VerdictCache implements ports.VerdictCache using Redis.
// Verdicts are stored as JSON under "verdict:<verdict key>".
type VerdictCache struct {
	client *goredis.Client
	prefix string
}

// NewVerdictCache creates a new Redis-backed verdict cache.
func NewVerdictCache(client *goredis.Client) *VerdictCache {
	return &VerdictCache{
		client: client,
		prefix: "verdict:",
	}
}

// Get retrieves a cached verdict.
// Returns nil, nil if the key does not exist.
func (c *VerdictCache) Get(ctx context.Context, key string) (*domain.Verdict, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis verdict get: %w", err)
	}

	var v domain.Verdict
	if err := json.Unmarshal(val, &v); err != nil {
		return nil, fmt.Errorf("decoding cached verdict: %w", err)
	}
	return &v, nil
}

// Set stores a verdict with TTL.
func (c *VerdictCache) Set(ctx context.Context, key string, verdict *domain.Verdict, ttl time.Duration) error {
	val, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("encoding verdict: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis verdict set: %w", err)
	}
	return nil
}
