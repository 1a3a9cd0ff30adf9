// Package config loads shipyard settings from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/shipyard/internal/component"
)

// Config holds all shipyard configuration.
type Config struct {
	// Board is the default board outline for ship files that name none.
	Board string `yaml:"board"`

	// Rear is the direction engines must exhaust toward.
	Rear string `yaml:"rear"`

	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// TelemetryConfig configures trace export to Honeycomb.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Dataset  string `yaml:"dataset"`
	APIKey   string `yaml:"-"` // environment only
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Board: "level-2",
		Rear:  "south",
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Endpoint: "https://api.honeycomb.io",
			Dataset:  "shipyard",
		},
	}
}

// LoadDotEnv loads .env files into the environment. Missing files are not
// an error; env vars might be set directly.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from a YAML file. An empty path or a missing
// file yields the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if board := os.Getenv("SHIPYARD_BOARD"); board != "" {
		c.Board = board
	}
	if rear := os.Getenv("SHIPYARD_REAR"); rear != "" {
		c.Rear = strings.ToLower(rear)
	}
	if level := os.Getenv("SHIPYARD_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if v := os.Getenv("SHIPYARD_TELEMETRY"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Telemetry.Enabled = enabled
		}
	}
	if key := os.Getenv("HONEYCOMB_SHIPYARD_API_KEY"); key != "" {
		c.Telemetry.APIKey = key
	}
	if dataset := os.Getenv("HONEYCOMB_SHIPYARD_DATASET"); dataset != "" {
		c.Telemetry.Dataset = dataset
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Board == "" {
		return errors.New("board not configured")
	}
	if _, err := c.RearDirection(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// RearDirection returns Rear as a component.Direction.
func (c *Config) RearDirection() (component.Direction, error) {
	d, ok := component.ParseDirection(c.Rear)
	if !ok {
		return component.South, fmt.Errorf("invalid rear direction: %q (valid: north, east, south, west)", c.Rear)
	}
	return d, nil
}

// LogLevel returns the configured zap level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// ExportEnv sets the standard OTEL_* variables the OTLP exporter reads.
func (t TelemetryConfig) ExportEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", t.Endpoint)

	// Built here because a .env file may hold an unexpanded reference.
	if t.APIKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", t.APIKey, t.Dataset))
	}
}
