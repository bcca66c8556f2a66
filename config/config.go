// Package config loads the server's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr   string   `yaml:"ListenAddr"`
	DatabasePath string   `yaml:"DatabasePath"`
	CORSOrigins  []string `yaml:"CORSOrigins"`

	// PatronSaintDate seeds new users' settings (MM-DD).
	PatronSaintDate string `yaml:"PatronSaintDate"`
}

// Load reads the config at path. A missing file yields the defaults; a
// present but malformed one is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Apply defaults for missing values
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = Default().ListenAddr
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = Default().DatabasePath
	}
	if cfg.PatronSaintDate == "" {
		cfg.PatronSaintDate = Default().PatronSaintDate
	}

	// Expand ~ in database path
	if strings.HasPrefix(cfg.DatabasePath, "~/") {
		home, _ := os.UserHomeDir()
		cfg.DatabasePath = filepath.Join(home, cfg.DatabasePath[2:])
	}

	return cfg, nil
}

func Default() *Config {
	return &Config{
		ListenAddr:      ":8080",
		DatabasePath:    "./data/timesheet.db",
		CORSOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		PatronSaintDate: "09-04",
	}
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s", e.Field, e.Message)
}

// Validate checks the configuration for common issues
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return &ValidationError{Field: "ListenAddr", Message: "listen address is required"}
	}
	if c.DatabasePath == "" {
		return &ValidationError{Field: "DatabasePath", Message: "database path is required"}
	}
	if c.PatronSaintDate != "" {
		var m, d int
		if n, err := fmt.Sscanf(c.PatronSaintDate, "%d-%d", &m, &d); err != nil || n != 2 ||
			m < 1 || m > 12 || d < 1 || d > 31 {
			return &ValidationError{Field: "PatronSaintDate", Message: "must be MM-DD"}
		}
	}
	return nil
}
