package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skillstats/skillstats/internal/skills"
)

// Config holds server configuration
type Config struct {
	// Server settings
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Storage settings
	DBPath string `yaml:"dbPath"`

	// Dataset settings
	ManifestPath string `yaml:"manifestPath,omitempty"`

	// Operational settings
	GracefulShutdownTimeout time.Duration `yaml:"-"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Host:                    "0.0.0.0",
		Port:                    8080,
		GracefulShutdownTimeout: 30 * time.Second,
	}
}

// LoadFile merges settings from a YAML config file over the receiver
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// ApplyEnv fills settings left empty from the environment
func (c *Config) ApplyEnv() {
	if c.DBPath == "" {
		c.DBPath = os.Getenv("SKILLSTATS_DB")
	}
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.DBPath == "" {
		return &skills.MissingConfigurationError{Field: "database path (-db flag or SKILLSTATS_DB)"}
	}

	return nil
}
