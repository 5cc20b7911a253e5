package sweep

import (
	"time"

	"github.com/rahvarz/bazar/internal/config"
)

type Config struct {
	// RunInterval spaces out lifecycle passes over inventory, products
	// and offers.
	RunInterval time.Duration
	// CodeInterval spaces out one-time-code cleanup, which runs on its
	// own, much shorter cadence.
	CodeInterval time.Duration
	// OrphanGrace is how long a product may exist without inventory
	// batches before the sweep removes it.
	OrphanGrace time.Duration
	// JobTimeout bounds a single job invocation.
	JobTimeout time.Duration
}

func ProvideConfig(cfg config.Config) Config {
	return Config{
		RunInterval:  cfg.SweepInterval,
		CodeInterval: cfg.CodeCleanupInterval,
		OrphanGrace:  cfg.OrphanGrace,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.RunInterval <= 0 {
		c.RunInterval = time.Hour
	}
	if c.CodeInterval <= 0 {
		c.CodeInterval = time.Minute
	}
	if c.OrphanGrace <= 0 {
		c.OrphanGrace = time.Hour
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = 30 * time.Second
	}
	return c
}
