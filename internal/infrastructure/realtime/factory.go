package realtime

import (
	"context"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Drivers accepted in RealtimeConfig.Driver
const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// NewNotifier builds the notifier selected by configuration. When Redis is
// selected but unreachable it logs a warning and falls back to the in-memory
// notifier. The Redis relay is started in the background and stops on Close.
func NewNotifier(ctx context.Context, cfg config.RealtimeConfig, redisCfg config.RedisConfig, logger *zap.Logger) shared.ChangeNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Driver != DriverRedis {
		logger.Info("Using in-memory live updates")
		return NewInMemoryNotifier(logger)
	}

	n, err := NewRedisNotifier(ctx, redisCfg.Addr(), redisCfg.Password, redisCfg.DB,
		WithChannel(cfg.Channel),
		WithLogger(logger),
	)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory live updates", zap.Error(err))
		return NewInMemoryNotifier(logger)
	}

	go func() {
		if err := n.Run(context.Background()); err != nil && err != context.Canceled {
			logger.Error("Content change relay exited", zap.Error(err))
		}
	}()

	logger.Info("Using Redis live updates", zap.String("channel", n.Channel()))
	return n
}
