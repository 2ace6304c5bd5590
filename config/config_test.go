package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DIGITPAD_SESSION", filepath.Join(dir, "session.yaml"))

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 280, cfg.CanvasSize)
	assert.Equal(t, 28, cfg.RasterSize)
	assert.Equal(t, 18.0, cfg.LiveInkWidth)
	assert.Equal(t, 5.0, cfg.RedrawInkWidth)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "config.yaml")
	content := `api_url: http://localhost:9000/classify
timeout: 5s
canvas_size: 140
raster_size: 14
live_ink_width: 9
redraw_ink_width: 3
session_file: /tmp/digitpad-session.yaml
`
	require.NoError(t, os.WriteFile(fn, []byte(content), 0600))
	t.Setenv("DIGITPAD_TIMEOUT", "2s")

	cfg, err := Load(fn)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/classify", cfg.APIURL)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 140, cfg.CanvasSize)
	assert.Equal(t, 14, cfg.RasterSize)
	assert.Equal(t, 9.0, cfg.LiveInkWidth)
	assert.Equal(t, 3.0, cfg.RedrawInkWidth)
	assert.Equal(t, "/tmp/digitpad-session.yaml", cfg.SessionFile)
}

func TestLoadBadEnvTimeout(t *testing.T) {
	t.Setenv("DIGITPAD_TIMEOUT", "soon")
	t.Setenv("DIGITPAD_SESSION", filepath.Join(t.TempDir(), "s.yaml"))
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no url", func(c *Config) { c.APIURL = "" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"zero canvas", func(c *Config) { c.CanvasSize = 0 }},
		{"raster too large", func(c *Config) { c.RasterSize = 300 }},
		{"zero ink", func(c *Config) { c.RedrawInkWidth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "config.yaml")
	cfg := Default()
	cfg.SessionFile = filepath.Join(dir, "session.yaml")
	cfg.Timeout = 7 * time.Second
	require.NoError(t, cfg.Save(fn))

	loaded, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
