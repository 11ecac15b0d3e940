package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Catalog.Variant != "full" {
		t.Errorf("Expected variant 'full', got '%s'", cfg.Catalog.Variant)
	}
	if cfg.Render.Primary != "terminal" {
		t.Errorf("Expected primary renderer 'terminal', got '%s'", cfg.Render.Primary)
	}
	if !cfg.Render.Fallback {
		t.Error("Expected fallback to be enabled by default")
	}
	if cfg.Render.BreakerTimeout != 30*time.Second {
		t.Errorf("Expected BreakerTimeout 30s, got %v", cfg.Render.BreakerTimeout)
	}
	if cfg.Export.Concurrency != 4 {
		t.Errorf("Expected export concurrency 4, got %d", cfg.Export.Concurrency)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestWithSettersReturnCopies(t *testing.T) {
	base := DefaultConfig()
	changed := base.WithRenderer("raster").WithFallback(false).WithVariant("simple")

	assert.Equal(t, "terminal", base.Render.Primary)
	assert.True(t, base.Render.Fallback)
	assert.Equal(t, "raster", changed.Render.Primary)
	assert.False(t, changed.Render.Fallback)
	assert.Equal(t, "simple", changed.Catalog.Variant)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"valid default config", DefaultConfig(), ""},
		{"unknown variant", DefaultConfig().WithVariant("fancy"), "catalog.variant"},
		{"file overrides variant", DefaultConfig().WithVariant("fancy").WithCatalogFile("x.yaml"), ""},
		{"unknown renderer", DefaultConfig().WithRenderer("opengl"), "render.primary"},
		{"none renderer is allowed", DefaultConfig().WithRenderer("none"), ""},
		{"tiny surface", func() Config { c := DefaultConfig(); c.Render.Width = 10; return c }(), "render.width"},
		{"breaker without timeout", func() Config { c := DefaultConfig(); c.Render.BreakerTimeout = 0; return c }(), "render.breaker_timeout"},
		{"bad export format", func() Config { c := DefaultConfig(); c.Export.Formats = []string{"pdf"}; return c }(), "export.formats"},
		{"zero concurrency", func() Config { c := DefaultConfig(); c.Export.Concurrency = 0; return c }(), "export.concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestSource(t *testing.T) {
	src, err := DefaultConfig().WithVariant("simple").Source()
	require.NoError(t, err)
	cat, err := src.Build()
	require.NoError(t, err)
	assert.Equal(t, 5, cat.Len())

	src, err = DefaultConfig().WithCatalogFile(filepath.Join(t.TempDir(), "missing.yaml")).Source()
	require.NoError(t, err)
	_, err = src.Build()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "none.env")})
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), *cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "chartdeck.yaml")
	yaml := `
catalog:
  variant: simple
render:
  primary: raster
  width: 1024
  breaker_timeout: 5s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CHARTDECK_LOG_DIR=/tmp/chartdeck-logs\n"), 0o644))
	t.Setenv("CHARTDECK_LOG_DIR", "")
	os.Unsetenv("CHARTDECK_LOG_DIR")

	t.Setenv("CHARTDECK_RENDER_HEIGHT", "700")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	fs.Bool("no-animate", false, "")
	require.NoError(t, fs.Parse([]string{"--renderer=terminal", "--no-animate"}))

	cfg, err := Load(LoadOptions{ConfigFile: file, EnvFile: envFile, Flags: fs})
	require.NoError(t, err)

	assert.Equal(t, "simple", cfg.Catalog.Variant)
	assert.Equal(t, "terminal", cfg.Render.Primary, "flag beats file")
	assert.Equal(t, 1024, cfg.Render.Width)
	assert.Equal(t, 700, cfg.Render.Height, "env beats default")
	assert.Equal(t, 5*time.Second, cfg.Render.BreakerTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/chartdeck-logs", cfg.Log.Dir)
	assert.False(t, cfg.UI.Animate)
	assert.True(t, cfg.UI.Mouse)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("CHARTDECK_RENDER_PRIMARY", "opengl")
	_, err := Load(LoadOptions{EnvFile: filepath.Join(t.TempDir(), "none.env")})
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}
