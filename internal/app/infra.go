package app

import (
	"context"
	"fmt"

	"pokedex-server/internal/config"
	"pokedex-server/internal/logger"
	"pokedex-server/internal/redis"
	"pokedex-server/internal/session"
)

type Infra struct {
	Sessions session.Store
	Redis    *redis.Client // nil unless SESSION_BACKEND=redis
}

func (i *Infra) Close() error {
	if i.Redis != nil {
		return i.Redis.Close()
	}
	return nil
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	switch cfg.SessionBackend {
	case "", config.BackendMemory:
		logger.Info("session store ready", map[string]any{"backend": config.BackendMemory})
		return &Infra{Sessions: session.NewMemoryStore()}, nil

	case config.BackendRedis:
		redisClient, err := redis.New(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}

		logger.Info("session store ready", map[string]any{
			"backend": config.BackendRedis,
			"addr":    cfg.RedisAddr,
		})

		return &Infra{
			Sessions: session.NewRedisStore(redisClient.Client),
			Redis:    redisClient,
		}, nil

	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
