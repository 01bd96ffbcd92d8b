package logger

import (
	"gamify_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		mode  string
		level string
		want  zapcore.Level
	}{
		{"debug", "", zap.DebugLevel},
		{"release", "", zap.InfoLevel},
		{"release", "warn", zap.WarnLevel},
		{"debug", "error", zap.ErrorLevel},
		{"release", "loud", zap.InfoLevel},
	}
	for _, c := range cases {
		cfg := &config.Config{Server: config.ServerConfig{Mode: c.mode}, Log: config.LogConfig{Level: c.level}}
		assert.Equal(t, c.want, levelFor(cfg), "%s/%s", c.mode, c.level)
	}
}

func TestForUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := Log
	Log = zap.New(core)
	t.Cleanup(func() { Log = prev })

	ForUser(42).Info("User leveled up", zap.Int("level", 3))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, uint64(42), fields["user_id"])
	assert.Equal(t, int64(3), fields["level"])
}
