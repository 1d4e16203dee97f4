package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/rpg-tracker/internal/config"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
)

func TestNewLoggerFormats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger(config.LoggingConfig{Level: "info", Format: format})
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, logger)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLoggerInvalid(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewLoggerOptions(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "json"}, zap.Fields(zap.String("run", "test")))
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
