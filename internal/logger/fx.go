package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func registerHooks(lc fx.Lifecycle, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = ctx
			_ = log.Sync()
			return nil
		},
	})
}

// Module wires the application logger off the loaded config.
var Module = fx.Module("logger",
	fx.Provide(New),
	fx.Invoke(registerHooks),
)
