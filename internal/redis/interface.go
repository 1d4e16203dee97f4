package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis used by the roster store
type Client interface {
	redis.Cmdable
	Close() error
}

// Nil is returned by GET when the key does not exist
const Nil = redis.Nil
