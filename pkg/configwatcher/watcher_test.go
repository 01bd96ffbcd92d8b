package configwatcher

import (
	"context"
	"fmt"
	"gamify_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const baseConfig = `
server:
  mode: test
gamification:
  xp_per_action: %d
  daily_quest_xp: 25
  weekly_quest_xp: 100
  daily_quest_points: 1
  weekly_quest_points: 5
`

func writeConfig(t *testing.T, path string, xpPerAction int) {
	t.Helper()
	content := []byte(fmtConfig(xpPerAction))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func fmtConfig(xp int) string {
	return fmt.Sprintf(baseConfig, xp)
}

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, 5)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	go func() {
		_ = WatchConfig(ctx, path, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待 watcher 注册
	time.Sleep(200 * time.Millisecond)
	writeConfig(t, path, 9)

	select {
	case cfg := <-reloaded:
		require.Equal(t, 9, cfg.Gamification.XPPerAction)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}
