// Package redis wraps the go-redis client so stores can depend on a small
// interface that tests satisfy with miniredis.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options tunes the client. The zero value is fine for a local server.
type Options struct {
	PoolSize    int
	MaxRetries  int
	DialTimeout time.Duration
	DB          int
}

// NewClient creates a client for a single redis instance. Connections are
// opened lazily; use Ping to check reachability.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClient(&redis.Options{
		Addr:        endpoint,
		DB:          opts.DB,
		PoolSize:    opts.PoolSize,
		MaxRetries:  opts.MaxRetries,
		DialTimeout: opts.DialTimeout,
	}), nil
}

// Ping checks that the server answers within the context deadline
func Ping(ctx context.Context, c Client) error {
	return c.Ping(ctx).Err()
}
