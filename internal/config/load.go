package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g.
// CHARTDECK_RENDER_PRIMARY for render.primary.
const EnvPrefix = "CHARTDECK"

// LoadOptions says where Load looks besides the defaults.
type LoadOptions struct {
	// ConfigFile is an explicit YAML file. When empty, chartdeck.yaml is
	// searched in the working directory and a missing file is not an error.
	ConfigFile string
	// EnvFile is loaded into the environment first (default: .env).
	EnvFile string
	Flags   *pflag.FlagSet
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"variant":    "catalog.variant",
	"catalog":    "catalog.file",
	"renderer":   "render.primary",
	"fallback":   "render.fallback",
	"width":      "render.width",
	"height":     "render.height",
	"log-dir":    "log.dir",
	"log-level":  "log.level",
	"verbose":    "log.console",
	"out":        "export.dir",
	"format":     "export.formats",
	"parallel":   "export.concurrency",
	"stats-dsn":  "stats.dsn",
	"no-mouse":   "",
	"no-animate": "",
}

// RegisterFlags adds the shared flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String("config", "", "config file (default: ./chartdeck.yaml)")
	fs.String("variant", d.Catalog.Variant, "built-in catalog: full or simple (env: CHARTDECK_CATALOG_VARIANT)")
	fs.String("catalog", "", "YAML catalog file (env: CHARTDECK_CATALOG_FILE)")
	fs.String("renderer", d.Render.Primary, "primary renderer: terminal, raster or none (env: CHARTDECK_RENDER_PRIMARY)")
	fs.Bool("fallback", d.Render.Fallback, "draw an approximation when rendering fails (env: CHARTDECK_RENDER_FALLBACK)")
	fs.Int("width", d.Render.Width, "raster width in pixels (env: CHARTDECK_RENDER_WIDTH)")
	fs.Int("height", d.Render.Height, "raster height in pixels (env: CHARTDECK_RENDER_HEIGHT)")
	fs.String("log-dir", d.Log.Dir, "log directory (env: CHARTDECK_LOG_DIR)")
	fs.String("log-level", d.Log.Level, "log level (env: CHARTDECK_LOG_LEVEL)")
	fs.Bool("verbose", false, "also log to stderr (env: CHARTDECK_LOG_CONSOLE)")
	fs.String("stats-dsn", "", "DuckDB DSN for dataset statistics (env: CHARTDECK_STATS_DSN)")
}

// Load layers defaults, config file, .env, environment and flags, then
// validates the result.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// a missing .env is fine
	_ = godotenv.Load(envFile)

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("chartdeck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if key == "" {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	// negative switches only count when given explicitly
	if f := fs.Lookup("no-mouse"); f != nil && f.Changed {
		v.Set("ui.mouse", false)
	}
	if f := fs.Lookup("no-animate"); f != nil && f.Changed {
		v.Set("ui.animate", false)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("catalog.variant", d.Catalog.Variant)
	v.SetDefault("catalog.file", d.Catalog.File)

	v.SetDefault("render.primary", d.Render.Primary)
	v.SetDefault("render.fallback", d.Render.Fallback)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)
	v.SetDefault("render.breaker_failures", d.Render.BreakerFailures)
	v.SetDefault("render.breaker_timeout", d.Render.BreakerTimeout)

	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console", d.Log.Console)

	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.formats", d.Export.Formats)
	v.SetDefault("export.concurrency", d.Export.Concurrency)

	v.SetDefault("stats.dsn", d.Stats.DSN)

	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("ui.animate", d.UI.Animate)
	v.SetDefault("ui.info_style", d.UI.InfoStyle)

	v.SetDefault("mcp.name", d.MCP.Name)
	v.SetDefault("mcp.version", d.MCP.Version)
}
