// Package observability builds the tracker's structured logger.
package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/rpg-tracker/internal/config"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

// NewLogger creates a zap logger from the logging configuration. Output
// always goes to stderr so it never mixes with rendered sheets on stdout.
func NewLogger(cfg config.LoggingConfig, opts ...zap.Option) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.InvalidArgumentf("parsing log level %q: %v", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	default:
		return nil, errors.InvalidArgumentf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return logger.Named("tracker"), nil
}
