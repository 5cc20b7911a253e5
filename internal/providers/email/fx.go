package email

import (
	"github.com/rahvarz/bazar/internal/config"
	"go.uber.org/fx"
)

// Module provides the outbound mail transport. Without SMTP settings the
// no-op provider is used, which keeps local development mail-free.
var Module = fx.Module("providers.email",
	fx.Provide(func(cfg config.Config) Provider {
		if cfg.SMTPHost == "" {
			return &NoOpProvider{}
		}
		return NewSMTP(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	}),
)
