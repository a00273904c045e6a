package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("10, 20,30")
	require.NoError(t, err)
	assert.Equal(t, sdl.Color{R: 10, G: 20, B: 30, A: 255}, c)

	c, err = ParseColor("1,2,3,0")
	require.NoError(t, err)
	assert.Equal(t, sdl.Color{R: 1, G: 2, B: 3, A: 0}, c)

	for _, bad := range []string{"", "1,2", "1,2,3,4,5", "256,0,0", "a,b,c"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := map[string]func(*Config){
		"no assets":      func(c *Config) { c.AssetsDir = "" },
		"no trials":      func(c *Config) { c.NumTrials = 0 },
		"zero fraction":  func(c *Config) { c.ResizeFraction = 0 },
		"large fraction": func(c *Config) { c.ResizeFraction = 1.2 },
		"no width":       func(c *Config) { c.ScreenWidth = 0 },
		"no prime":       func(c *Config) { c.PrimeMS = 0 },
		"no response":    func(c *Config) { c.MaxResponseMS = 0 },
		"no scale":       func(c *Config) { c.ScaleFactor = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.AssetsDir = ""
	assert.ErrorIs(t, cfg.Validate(), ErrNoAssets)

	// A schedule supplies its own trial count.
	cfg = DefaultConfig()
	cfg.NumTrials = 0
	cfg.ScheduleFile = "schedule.csv"
	assert.NoError(t, cfg.Validate())
}

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFile)

	cfg := DefaultConfig()
	cfg.AssetsDir = "/data/assets"
	cfg.ScheduleFile = "s.csv"
	cfg.OutputFile = "out.csv"
	cfg.NumTrials = 24
	cfg.ResizeFraction = 0.08
	cfg.ScreenWidth, cfg.ScreenHeight = 1920, 1080
	cfg.UseFixation = false
	cfg.Fullscreen = true
	cfg.BGColor = sdl.Color{R: 12, G: 34, B: 56, A: 255}
	require.NoError(t, cfg.SaveCache(path))

	got := DefaultConfig()
	require.NoError(t, got.LoadCache(path))
	assert.Equal(t, cfg.AssetsDir, got.AssetsDir)
	assert.Equal(t, cfg.ScheduleFile, got.ScheduleFile)
	assert.Equal(t, cfg.OutputFile, got.OutputFile)
	assert.Equal(t, 24, got.NumTrials)
	assert.Equal(t, 0.08, got.ResizeFraction)
	assert.Equal(t, 1920, got.ScreenWidth)
	assert.Equal(t, 1080, got.ScreenHeight)
	assert.False(t, got.UseFixation)
	assert.True(t, got.Fullscreen)
	assert.Equal(t, cfg.BGColor, got.BGColor)
}

func TestLoadCacheTolerant(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadCache(filepath.Join(t.TempDir(), "missing")))
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), CacheFile)
	require.NoError(t, os.WriteFile(path, []byte("trials=abc\nnonsense\nunknown=1\nscreen_w=800\n"), 0o644))
	require.NoError(t, cfg.LoadCache(path))
	assert.Equal(t, 10, cfg.NumTrials)
	assert.Equal(t, 800, cfg.ScreenWidth)
}
