package logger

import (
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/pkg/constvars"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "ehr-bundle-service"

// NewZapLogger builds the service logger. Development logs go to the
// console, production logs go to the configured files as JSON.
func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	cfg := newZapConfig(driverConfig.Logger, internalConfig.App.Env)

	zapLogger, err := cfg.Build(zap.Fields(
		zap.String("service", serviceName),
		zap.String("version", internalConfig.App.Version),
	))
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	return zapLogger
}

func newZapConfig(loggerConfig config.Logger, env string) zap.Config {
	level, err := zap.ParseAtomicLevel(loggerConfig.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	cfg := zap.Config{
		Level:            level,
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	switch env {
	case constvars.AppEnvProduction:
		cfg.OutputPaths = []string{loggerConfig.OutputFileName}
		cfg.ErrorOutputPaths = []string{"stderr", loggerConfig.OutputErrorFileName}
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	case constvars.AppEnvDevelopment:
		cfg.Development = true
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
