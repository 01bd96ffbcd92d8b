package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: \"9090\"\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, DefaultGamification(), cfg.Gamification)
	assert.Equal(t, "https://whop.com/oauth/token", cfg.Whop.TokenURL)
	assert.False(t, cfg.Whop.Configured())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, "gamification:\n  xp_per_action: 7\n")
	t.Setenv("XP_PER_DAILY_QUEST", "40")
	t.Setenv("WHOP_CLIENT_ID", "client")
	t.Setenv("WHOP_REDIRECT_URI", "http://localhost/cb")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Gamification.XPPerAction)
	assert.Equal(t, 40, cfg.Gamification.DailyQuestXP)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.True(t, cfg.Whop.Configured())
}

func TestLoadConfig_RejectsInvalidRewards(t *testing.T) {
	dir := writeConfig(t, "gamification:\n  weekly_quest_xp: 0\n")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfig_ReleaseRequiresSecrets(t *testing.T) {
	dir := writeConfig(t, "server:\n  mode: release\njwt:\n  secret: short\n")

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "JWT secret is too short")

	dir = writeConfig(t, "server:\n  mode: release\njwt:\n  secret: 0123456789abcdef0123456789abcdef\n")
	_, err = LoadConfig(dir)
	assert.ErrorContains(t, err, "webhook secret")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestGamificationConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultGamification().Validate())

	neg := DefaultGamification()
	neg.DailyQuestPoints = -1
	assert.Error(t, neg.Validate())

	zero := DefaultGamification()
	zero.XPPerAction = 0
	assert.Error(t, zero.Validate())
}
