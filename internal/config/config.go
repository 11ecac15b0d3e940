// Package config holds the chartdeck settings and loads them from defaults,
// a YAML file, .env, CHARTDECK_* variables and command line flags.
package config

import (
	"time"

	"chartdeck/internal/catalog"
	"chartdeck/internal/render"
)

// Config contains every tunable of the application.
// Use DefaultConfig() to get sensible defaults, then override as needed.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Render  RenderConfig  `mapstructure:"render"`
	Log     LogConfig     `mapstructure:"log"`
	Export  ExportConfig  `mapstructure:"export"`
	Stats   StatsConfig   `mapstructure:"stats"`
	UI      UIConfig      `mapstructure:"ui"`
	MCP     MCPConfig     `mapstructure:"mcp"`
}

type CatalogConfig struct {
	Variant string `mapstructure:"variant"` // full or simple (default: full)
	File    string `mapstructure:"file"`    // YAML catalog, overrides Variant when set
}

type RenderConfig struct {
	Primary         string        `mapstructure:"primary"`          // terminal, raster or none (default: terminal)
	Fallback        bool          `mapstructure:"fallback"`         // draw an approximation on failure (default: true)
	Width           int           `mapstructure:"width"`            // export and raster width in pixels (default: 800)
	Height          int           `mapstructure:"height"`           // export and raster height in pixels (default: 500)
	BreakerFailures uint32        `mapstructure:"breaker_failures"` // consecutive failures before the circuit opens, 0 disables (default: 3)
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`  // open circuit duration (default: 30s)
}

type LogConfig struct {
	Dir     string `mapstructure:"dir"`     // default: logs
	Level   string `mapstructure:"level"`   // default: info
	Console bool   `mapstructure:"console"` // stderr output for non-interactive commands (default: false)
}

type ExportConfig struct {
	Dir         string   `mapstructure:"dir"`         // default: export
	Formats     []string `mapstructure:"formats"`     // png, svg, xlsx (default: all)
	Concurrency int      `mapstructure:"concurrency"` // default: 4
}

type StatsConfig struct {
	DSN string `mapstructure:"dsn"` // DuckDB DSN, empty for in-memory
}

type UIConfig struct {
	Mouse     bool   `mapstructure:"mouse"`      // default: true
	Animate   bool   `mapstructure:"animate"`    // default: true
	InfoStyle string `mapstructure:"info_style"` // glamour style: auto, dark, light, notty (default: auto)
}

type MCPConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Export formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatXLSX = "xlsx"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{Variant: catalog.VariantFull},
		Render: RenderConfig{
			Primary:         render.NameTerminal,
			Fallback:        true,
			Width:           800,
			Height:          500,
			BreakerFailures: 3,
			BreakerTimeout:  30 * time.Second,
		},
		Log: LogConfig{Dir: "logs", Level: "info"},
		Export: ExportConfig{
			Dir:         "export",
			Formats:     []string{FormatPNG, FormatSVG, FormatXLSX},
			Concurrency: 4,
		},
		UI:  UIConfig{Mouse: true, Animate: true, InfoStyle: "auto"},
		MCP: MCPConfig{Name: "chartdeck", Version: "v1.0.0"},
	}
}

// WithVariant returns a copy of the config using a built-in catalog variant.
func (c Config) WithVariant(v string) Config {
	c.Catalog.Variant = v
	return c
}

// WithCatalogFile returns a copy of the config reading its catalog from path.
func (c Config) WithCatalogFile(path string) Config {
	c.Catalog.File = path
	return c
}

// WithRenderer returns a copy of the config with another primary renderer.
func (c Config) WithRenderer(name string) Config {
	c.Render.Primary = name
	return c
}

// WithFallback returns a copy of the config with the fallback drawer enabled/disabled.
func (c Config) WithFallback(enabled bool) Config {
	c.Render.Fallback = enabled
	return c
}

// WithExportDir returns a copy of the config writing exports to dir.
func (c Config) WithExportDir(dir string) Config {
	c.Export.Dir = dir
	return c
}

// WithLogDir returns a copy of the config logging into dir.
func (c Config) WithLogDir(dir string) Config {
	c.Log.Dir = dir
	return c
}

// Source resolves the catalog source the settings point at.
func (c Config) Source() (catalog.Source, error) {
	if c.Catalog.File != "" {
		return catalog.FromFile(c.Catalog.File), nil
	}
	return catalog.Builtin(c.Catalog.Variant)
}

// Surface is the pixel surface used for raster output and exports.
func (c Config) Surface() render.Surface {
	return render.Surface{Width: c.Render.Width, Height: c.Render.Height}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if c.Catalog.File == "" {
		switch c.Catalog.Variant {
		case catalog.VariantFull, catalog.VariantSimple:
		default:
			return &ConfigError{Field: "catalog.variant", Message: "must be full or simple"}
		}
	}
	switch c.Render.Primary {
	case render.NameTerminal, render.NameRaster, render.NameNone:
	default:
		return &ConfigError{Field: "render.primary", Message: "must be terminal, raster or none"}
	}
	if c.Render.Width < 64 || c.Render.Height < 64 {
		return &ConfigError{Field: "render.width", Message: "width and height must be at least 64"}
	}
	if c.Render.BreakerFailures > 0 && c.Render.BreakerTimeout <= 0 {
		return &ConfigError{Field: "render.breaker_timeout", Message: "must be positive"}
	}
	for _, f := range c.Export.Formats {
		switch f {
		case FormatPNG, FormatSVG, FormatXLSX:
		default:
			return &ConfigError{Field: "export.formats", Message: "unknown format " + f}
		}
	}
	if c.Export.Concurrency <= 0 {
		return &ConfigError{Field: "export.concurrency", Message: "must be positive"}
	}
	if c.MCP.Name == "" {
		return &ConfigError{Field: "mcp.name", Message: "must not be empty"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}
