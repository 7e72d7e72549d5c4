package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/reobserve/reobserve/internal/common/config"
)

func TestNewLogger_Stdout(t *testing.T) {
	cfg := &config.LoggerConfig{}
	l, err := NewLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Info("hello")

	// defaults applied
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
	assert.Equal(t, 100, cfg.MaxSize)
}

func TestNewLogger_File(t *testing.T) {
	cfg := &config.LoggerConfig{
		Output:   "file",
		FilePath: filepath.Join(t.TempDir(), "logs", "apiserver.log"),
		Format:   "console",
		Level:    "debug",
	}
	l, err := NewLogger(cfg)
	require.NoError(t, err)
	l.Debug("file output")
	require.NoError(t, l.Sync())
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, getLogLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, getLogLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, getLogLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("bogus"))
}
