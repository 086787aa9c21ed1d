package logger

import (
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewZapConfig(t *testing.T) {
	loggerConfig := config.Logger{
		Level:               "warn",
		OutputFileName:      "service.log",
		OutputErrorFileName: "service_error.log",
	}

	t.Run("Production Writes Files", func(t *testing.T) {
		cfg := newZapConfig(loggerConfig, constvars.AppEnvProduction)

		assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())
		assert.Equal(t, "json", cfg.Encoding)
		assert.Equal(t, []string{"service.log"}, cfg.OutputPaths)
		assert.Equal(t, []string{"stderr", "service_error.log"}, cfg.ErrorOutputPaths)
		assert.NotNil(t, cfg.Sampling)
	})

	t.Run("Development Uses Console", func(t *testing.T) {
		cfg := newZapConfig(loggerConfig, constvars.AppEnvDevelopment)

		assert.True(t, cfg.Development)
		assert.Equal(t, "console", cfg.Encoding)
		assert.Equal(t, []string{"stdout"}, cfg.OutputPaths)
	})

	t.Run("Unknown Level Falls Back To Info", func(t *testing.T) {
		cfg := newZapConfig(config.Logger{Level: "verbose"}, "staging")

		assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
		assert.Equal(t, "json", cfg.Encoding)
	})
}
