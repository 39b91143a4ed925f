package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a fail-safe Redis wrapper for the registry's two cache uses:
// refresh-token storage and the stats summary. Connectivity problems degrade
// to cache misses so requests keep serving from MySQL; a nil Client behaves
// like an empty cache.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis at addr. The connection is lazy; a wrong address
// only shows up as permanent cache misses.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Get returns the value for key, or nil on a miss or when Redis is
// unreachable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		// Unreachable store reads as a miss.
		return nil, nil
	}
	return data, nil
}

// Set stores value under key for ttl. Redis errors are swallowed.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	c.rdb.Set(ctx, key, value, ttl)
	return nil
}

// Delete removes key. Redis errors are swallowed.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	c.rdb.Del(ctx, key)
	return nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
