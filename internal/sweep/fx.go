package sweep

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("sweep",
	fx.Provide(ProvideConfig),
	fx.Provide(New),
	fx.Invoke(Start),
)

func Start(lc fx.Lifecycle, s *Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go s.RunForever(ctx)
			go s.RunCodeCleanupForever(ctx)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})

			return nil
		},
	})
}
