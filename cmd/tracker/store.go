package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tracker/internal/config"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/redis"
	"github.com/KirkDiggler/rpg-tracker/internal/repositories/roster"
)

// store is the configured roster repository plus what doctor needs to
// report on it
type store struct {
	roster.Repository
	name string
	// check verifies the backend is reachable. Nil means always healthy.
	check func(ctx context.Context) error
	// lastSaved reports when the snapshot was written, if the backend knows
	lastSaved func(ctx context.Context) (time.Time, error)
	close     func() error
}

func openStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := roster.NewSQLite(ctx, &roster.SQLiteConfig{
			Path: cfg.SQLitePath,
			Key:  cfg.RosterKey,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("opened sqlite store", zap.String("path", cfg.SQLitePath))
		return &store{
			Repository: db,
			name:       fmt.Sprintf("sqlite %s", cfg.SQLitePath),
			lastSaved: func(ctx context.Context) (time.Time, error) {
				ms, err := db.UpdatedAt(ctx)
				if err != nil || ms == 0 {
					return time.Time{}, err
				}
				return time.UnixMilli(ms), nil
			},
			close: db.Close,
		}, nil

	case config.DriverRedis:
		client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{DialTimeout: cfg.RedisDialTimeout})
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}
		repo, err := roster.NewRedis(&roster.RedisConfig{Client: client, Key: cfg.RosterKey})
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		logger.Debug("using redis store", zap.String("addr", cfg.RedisAddr))
		return &store{
			Repository: repo,
			name:       fmt.Sprintf("redis %s", cfg.RedisAddr),
			check: func(ctx context.Context) error {
				if err := redis.Ping(ctx, client); err != nil {
					return errors.WrapWithCode(err, errors.CodeUnavailable, "redis did not answer")
				}
				return nil
			},
			close: client.Close,
		}, nil

	case config.DriverMemory:
		logger.Warn("memory storage does not persist between runs")
		return &store{Repository: roster.NewInMemory(), name: "memory"}, nil

	default:
		return nil, errors.InvalidArgumentf("unknown storage driver %q", cfg.Driver)
	}
}
