// Package config loads coachinspect settings.
//
// Precedence, lowest first: Default(), the optional YAML file, COACHINSPECT_*
// environment variables, then command-line flags (applied by the CLI).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/store"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "COACHINSPECT_"

// Config holds process-wide settings.
type Config struct {
	// DatabasePath is the SQLite answer store file.
	DatabasePath string `yaml:"database_path" env:"DB"`

	// Driver selects the SQLite driver: "sqlite3" (cgo) or "sqlite" (pure Go).
	Driver string `yaml:"driver" env:"DRIVER"`

	// CatalogDir is a directory of .cue/.yaml catalog files, or one file.
	CatalogDir string `yaml:"catalog_dir" env:"CATALOG"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`   // debug|info|warn|error
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"` // text|json

	Telemetry Telemetry `yaml:"telemetry" envPrefix:"OTEL_"`
}

// Telemetry configures the optional OTLP trace exporter.
type Telemetry struct {
	Enabled     bool   `yaml:"enabled" env:"ENABLED"`
	Endpoint    string `yaml:"endpoint" env:"ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DatabasePath: "coachinspect.db",
		Driver:       store.DriverCGo,
		CatalogDir:   "catalog",
		LogLevel:     "info",
		LogFormat:    "text",
		Telemetry: Telemetry{
			ServiceName: "coachinspect",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and the environment. It does not call Validate, so
// callers can apply flag overrides first.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, apperrors.Wrap(apperrors.CodeValidation, "invalid config file "+path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, apperrors.Wrap(apperrors.CodeValidation, "parse env", err)
	}
	return cfg, nil
}

// decodeYAML overlays data onto cfg. Unknown keys are rejected so typos do
// not pass silently. An empty document leaves cfg untouched.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Driver {
	case store.DriverCGo, store.DriverPure:
	default:
		return apperrors.Newf(apperrors.CodeValidation,
			"invalid driver %q: must be %q or %q", c.Driver, store.DriverCGo, store.DriverPure)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return apperrors.Newf(apperrors.CodeValidation, "invalid log format %q: must be text or json", c.LogFormat)
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return apperrors.New(apperrors.CodeValidation, "database path is required")
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, apperrors.Newf(apperrors.CodeValidation, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// NewLogger builds the process logger writing to w.
// verbose forces debug level.
func (c Config) NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
