package roster

import (
	"context"
	stderrors "errors"

	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-tracker/internal/redis"
)

type redisRepository struct {
	client redisclient.Client
	key    string
}

// RedisConfig contains configuration for the Redis roster repository
type RedisConfig struct {
	Client redisclient.Client
	// Key is the redis key holding the snapshot
	Key string
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.Key == "" {
		return errors.InvalidArgument(errKeyEmpty)
	}
	return nil
}

// NewRedis creates a Redis-backed roster repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
		key:    cfg.Key,
	}, nil
}

func (r *redisRepository) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if stderrors.Is(err, redisclient.Nil) {
			return nil, errors.NotFoundf("no roster stored at %s", r.key)
		}
		return nil, errors.Wrapf(err, "failed to get roster")
	}

	roster, err := decode(data)
	if err != nil {
		return nil, err
	}
	return &LoadOutput{Roster: roster}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	data, err := encode(input.Roster)
	if err != nil {
		return nil, err
	}

	// No TTL, the roster lives until cleared
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save roster")
	}
	return &SaveOutput{}, nil
}

func (r *redisRepository) Clear(ctx context.Context, _ ClearInput) (*ClearOutput, error) {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to clear roster")
	}
	return &ClearOutput{}, nil
}
