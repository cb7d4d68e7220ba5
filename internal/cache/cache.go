package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portfolio:"

// Client is a namespaced redis client used for short-lived markers such as
// revoked token ids. A nil *Client is valid: nothing is stored and every
// lookup misses.
type Client struct {
	rdb *redis.Client
}

// New connects lazily to addr. An empty addr disables the cache and returns nil.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return nil
	}
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Enabled reports whether a redis server is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Ping checks connectivity. A disabled client always succeeds.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Mark records key until ttl elapses; ttl 0 keeps it until deleted.
// Write failures are returned so callers never report a marker that was not stored.
func (c *Client) Mark(ctx context.Context, key string, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Set(ctx, keyPrefix+key, "1", ttl).Err()
}

// Marked reports whether key is present. Lookups fail open: an unreachable
// server reads as a miss.
func (c *Client) Marked(ctx context.Context, key string) bool {
	if !c.Enabled() {
		return false
	}
	n, err := c.rdb.Exists(ctx, keyPrefix+key).Result()
	return err == nil && n > 0
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
