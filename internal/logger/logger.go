package logger

import (
	"fmt"

	"github.com/rahvarz/bazar/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. The development environment gets the
// human-readable console encoder; every other environment logs JSON with
// ISO8601 timestamps. The result is installed as the zap global.
func New(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Environment == "development" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg.Encoding = "json"
		zcfg.EncoderConfig.TimeKey = "ts"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(log)
	return log, nil
}
