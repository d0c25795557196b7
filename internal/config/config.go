package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use "30s"-style values.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig holds configuration for the studyplan server.
type ServerConfig struct {
	Addr          string   `yaml:"addr"`           // Listen address (default ":8080")
	LogLevel      string   `yaml:"log_level"`      // Log level: debug, info, warn, error
	LogFormat     string   `yaml:"log_format"`     // Log format: text, json
	DBPath        string   `yaml:"db_path"`        // SQLite database path (default ~/.studyplan/studyplan.db, ":memory:" for testing)
	SweepInterval Duration `yaml:"sweep_interval"` // Overdue sweep cadence (default 1m)
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:          ":8080",
		LogLevel:      "info",
		LogFormat:     "text",
		SweepInterval: Duration(time.Minute),
	}
}

// LoadFile overlays settings from a YAML file onto cfg. Unset fields in the
// file keep their current values.
func LoadFile(path string, cfg *ServerConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
