package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ARCADEZONE_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "builtin", cfg.Catalog.Source)
	require.Equal(t, 2500*time.Millisecond, cfg.Loader.Duration)
	require.Equal(t, 50*time.Millisecond, cfg.Loader.Interval)
	require.Equal(t, 200*time.Millisecond, cfg.Loader.Settle)
	require.Equal(t, 768.0, cfg.Carousel.Breakpoint)
	require.Equal(t, 50.0, cfg.Carousel.SwipeThreshold)
	require.Equal(t, LayoutConfig{ItemWidth: 256, ItemGap: 32}, cfg.Carousel.Compact)
	require.Equal(t, LayoutConfig{ItemWidth: 320, ItemGap: 96}, cfg.Carousel.Wide)
	require.True(t, cfg.UI.AltScreen)
	require.Equal(t, filepath.Join(home, ".local", "share", "arcadezone", "arcadezone.db"), cfg.Database.Path)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[catalog]
source = "File"
path = "/tmp/games.toml"

[loader]
duration = "1s"
interval = "100ms"

[carousel.wide]
item_width = 400
`), 0o644))
	t.Setenv("ARCADEZONE_CONFIG", path)
	t.Setenv("ARCADEZONE_CAROUSEL_SWIPE_THRESHOLD", "70")
	t.Setenv("ARCADEZONE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "file", cfg.Catalog.Source)
	require.Equal(t, "/tmp/games.toml", cfg.Catalog.Path)
	require.Equal(t, time.Second, cfg.Loader.Duration)
	require.Equal(t, 100*time.Millisecond, cfg.Loader.Interval)
	require.Equal(t, 200*time.Millisecond, cfg.Loader.Settle, "unset keys keep defaults")
	require.Equal(t, 400.0, cfg.Carousel.Wide.ItemWidth)
	require.Equal(t, 96.0, cfg.Carousel.Wide.ItemGap)
	require.Equal(t, 70.0, cfg.Carousel.SwipeThreshold)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[loader\nduration ="), 0o644))
	t.Setenv("ARCADEZONE_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "cfg", "config.toml")
	t.Setenv("ARCADEZONE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Catalog.Source = "sqlite"
	cfg.Loader.Duration = 3 * time.Second
	cfg.UI.TargetBase = "https://arcade.example"

	written, err := Save(cfg)
	require.NoError(t, err)
	require.Equal(t, path, written)

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}
