package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProtocolOverrides(t *testing.T) {
	src := `
trials          = 20
resize_fraction = 0.08
seed            = 42
assets_dir      = "stimuli"

timing {
  prime_ms        = 50
  max_response_ms = 10000
}
`
	p, err := ParseProtocol([]byte(src), "test.hcl")
	require.NoError(t, err)

	cfg := DefaultConfig()
	p.Apply(cfg)

	assert.Equal(t, 20, cfg.NumTrials)
	assert.Equal(t, 0.08, cfg.ResizeFraction)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "stimuli", cfg.AssetsDir)
	assert.Equal(t, uint64(50), cfg.PrimeMS)
	assert.Equal(t, uint64(10000), cfg.MaxResponseMS)

	// Untouched settings keep their defaults.
	def := DefaultConfig()
	assert.Equal(t, def.FixationMS, cfg.FixationMS)
	assert.Equal(t, def.ScreenWidth, cfg.ScreenWidth)
	assert.Equal(t, def.OutputFile, cfg.OutputFile)
}

func TestParseProtocolEmpty(t *testing.T) {
	p, err := ParseProtocol([]byte(""), "empty.hcl")
	require.NoError(t, err)

	cfg := DefaultConfig()
	p.Apply(cfg)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseProtocolErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":         `trials = `,
		"unknown field":  `colour = "red"`,
		"wrong type":     `trials = "many"`,
		"zero trials":    `trials = 0`,
		"fraction":       `resize_fraction = 2`,
		"negative delay": "timing {\n  prime_ms = -1\n}\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseProtocol([]byte(src), "bad.hcl")
			assert.Error(t, err)
		})
	}
}

func TestLoadProtocolFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protocol.hcl")
	require.NoError(t, os.WriteFile(path, []byte("width = 1200\nheight = 800\nfullscreen = true\n"), 0o644))

	p, err := LoadProtocol(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	p.Apply(cfg)
	assert.Equal(t, 1200, cfg.ScreenWidth)
	assert.Equal(t, 800, cfg.ScreenHeight)
	assert.True(t, cfg.Fullscreen)

	_, err = LoadProtocol(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
