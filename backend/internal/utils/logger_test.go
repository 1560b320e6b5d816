package utils

import (
	"os"
	"path/filepath"
	"testing"

	"passforge/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewSugaredLogger_WritesRotatedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := &config.LoggerConfig{
		Level:      "debug",
		Format:     "json",
		OutputPath: filepath.Join(dir, "passforge.log"),
		MaxSize:    1,
		EnableFile: true,
	}

	logger, err := NewSugaredLogger(cfg)
	require.NoError(t, err)
	logger.Debugw("generated", "length", 16)
	_ = logger.Sync()

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"generated"`)
	assert.Contains(t, string(data), `"level":"DEBUG"`)
	assert.Contains(t, string(data), `"length":16`)
}

func TestNewAccessLogger_SeparateFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LoggerConfig{
		Format:     "json",
		OutputPath: filepath.Join(dir, "passforge.log"),
		EnableFile: true,
	}

	access, err := NewAccessLogger(cfg)
	require.NoError(t, err)
	access.Infow("HTTP request", "status", 200)
	_ = access.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "access.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "HTTP request")

	_, err = os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestNewSugaredLogger_ConsoleOnly(t *testing.T) {
	logger, err := NewSugaredLogger(&config.LoggerConfig{Level: "info", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	db, err := NewDatabaseLogger(&config.LoggerConfig{Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, db)
}
