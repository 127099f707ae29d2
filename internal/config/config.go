// Package config loads toynum settings from defaults, an optional
// toynum.yaml, TOYNUM_ environment variables and command-line flags.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/edp1096/toy-numeric/internal/consts"
	"github.com/edp1096/toy-numeric/pkg/analysis"
	"github.com/edp1096/toy-numeric/pkg/numerr"
)

const (
	EnvPrefix     = "TOYNUM_"
	DefaultFile   = "toynum.yaml"
	DefaultOutput = "table"
	DefaultAddr   = ":8080"
	DefaultLevel  = "info"
	DefaultFormat = "text"
)

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type Config struct {
	Decimals  int          `koanf:"decimals"`
	MaxIter   int          `koanf:"max_iter"`
	Tolerance float64      `koanf:"tolerance"`
	Output    string       `koanf:"output"`
	LogLevel  string       `koanf:"log_level"`
	LogFormat string       `koanf:"log_format"`
	Server    ServerConfig `koanf:"server"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

func Default() *Config {
	return &Config{
		Decimals:  3,
		MaxIter:   25,
		Tolerance: 0.0001,
		Output:    DefaultOutput,
		LogLevel:  DefaultLevel,
		LogFormat: DefaultFormat,
		Server:    ServerConfig{Addr: DefaultAddr},
	}
}

// Settings returns the solver fallbacks for decks that leave them unset.
func (c *Config) Settings() analysis.Settings {
	return analysis.Settings{Decimals: c.Decimals, Tolerance: c.Tolerance, MaxIter: c.MaxIter}
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{DefaultFile, "toynum.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads configuration. Precedence, highest first: flags that were
// set explicitly, TOYNUM_ env vars, the config file, defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	def := Default()

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"decimals":    def.Decimals,
		"max_iter":    def.MaxIter,
		"tolerance":   def.Tolerance,
		"output":      def.Output,
		"log_level":   def.LogLevel,
		"log_format":  def.LogFormat,
		"server.addr": def.Server.Addr,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, numerr.Wrap(numerr.ConfigurationError, "config", err, "error reading config file %s", used)
		}
	}

	// 3. Environment, TOYNUM_SERVER_ADDR -> server.addr
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if strings.HasPrefix(key, "server_") {
			return "server." + strings.TrimPrefix(key, "server_")
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			switch key {
			case "addr":
				key = "server.addr"
			case "tol":
				key = "tolerance"
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, numerr.Wrap(numerr.ConfigurationError, "config", err, "unable to decode config")
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Decimals < consts.MinDecimals || c.Decimals > consts.MaxDecimals {
		return numerr.New(numerr.ConfigurationError, "config", "decimals must be between %d and %d, got %d", consts.MinDecimals, consts.MaxDecimals, c.Decimals)
	}
	if c.MaxIter <= 0 {
		return numerr.New(numerr.ConfigurationError, "config", "max_iter must be positive, got %d", c.MaxIter)
	}
	if !(c.Tolerance > 0) {
		return numerr.New(numerr.ConfigurationError, "config", "tolerance must be positive, got %g", c.Tolerance)
	}
	switch c.Output {
	case "table", "json", "markdown":
	default:
		return numerr.New(numerr.ConfigurationError, "config", "unknown output format %q (want table, json or markdown)", c.Output)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return numerr.New(numerr.ConfigurationError, "config", "unknown log format %q (want text or json)", c.LogFormat)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, numerr.New(numerr.ConfigurationError, "config", "unknown log level %q", s)
	}
	return level, nil
}

// NewLogger builds the process logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type loggerKey struct{}

type configKey struct{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from ctx.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from ctx, or the defaults.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return Default()
}
