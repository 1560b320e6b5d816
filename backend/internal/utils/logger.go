package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"passforge/backend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps a config level name to a zap level, defaulting to info.
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

// newCore tees a rotated file named filename (placed next to cfg.OutputPath)
// and stderr, each only when enabled. With both disabled it logs to stderr.
func newCore(cfg *config.LoggerConfig, filename string, level zapcore.Level) (zapcore.Core, error) {
	encoder := newEncoder(cfg.Format)
	var cores []zapcore.Core

	if cfg.EnableFile && cfg.OutputPath != "" {
		logsDir := filepath.Dir(cfg.OutputPath)
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(logsDir, filename),
			MaxSize:    cfg.MaxSize, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(fileWriter), level))
	}

	if cfg.EnableConsole || len(cores) == 0 {
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zapcore.Lock(os.Stderr), level))
	}

	return zapcore.NewTee(cores...), nil
}

func NewSugaredLogger(cfg *config.LoggerConfig) (*zap.SugaredLogger, error) {
	core, err := newCore(cfg, filepath.Base(cfg.OutputPath), ParseLevel(cfg.Level))
	if err != nil {
		return nil, err
	}
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger.Sugar(), nil
}

// Create a separate logger for HTTP access logs
func NewAccessLogger(cfg *config.LoggerConfig) (*zap.SugaredLogger, error) {
	core, err := newCore(cfg, "access.log", zapcore.InfoLevel)
	if err != nil {
		return nil, err
	}
	return zap.New(core).Sugar(), nil
}

// Create a separate logger for database logs
func NewDatabaseLogger(cfg *config.LoggerConfig) (*zap.SugaredLogger, error) {
	core, err := newCore(cfg, "database.log", zapcore.InfoLevel)
	if err != nil {
		return nil, err
	}
	return zap.New(core).Sugar().Named("database"), nil
}
