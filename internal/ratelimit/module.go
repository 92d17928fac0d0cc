package ratelimit

import (
	"context"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"

	"github.com/prizelab/giveawayd/internal/config"
)

// Module wires a rate limit counter store into the fx graph. A Redis
// backed store is used when an address is configured, otherwise the
// process-local memory store serves single-instance deployments.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) Store {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("rate limiting with in-memory store")
		return NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	p.Logger.Info("rate limiting with redis store", "address", p.Config.RedisAddress)
	return NewRedisStore(client)
}

func registerLifecycle(lc fx.Lifecycle, store Store, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if err := store.Close(); err != nil {
				logger.Error("closing rate limit store", "error", err)
				return err
			}
			return nil
		},
	})
}
