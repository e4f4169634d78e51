// Package config loads the hanvit.yml application configuration.
// Secrets (Gemini API key, admin secret) come from the environment; a
// .env file is loaded first if present so local development needs no
// exported variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names for secrets.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvAdminSecret  = "HANVIT_ADMIN_SECRET"
)

// Config is the top-level hanvit.yml configuration.
type Config struct {
	// Instance namespaces all remote keys and channels so several
	// deployments can share one Redis server.
	Instance string `yaml:"instance"`

	// DataDir is where the local state snapshot is persisted.
	DataDir string `yaml:"data_dir"`

	Redis RedisConfig `yaml:"redis"`
	Sync  SyncConfig  `yaml:"sync,omitempty"`

	// Secrets, populated from the environment, never from YAML.
	GeminiAPIKey string `yaml:"-"`
	AdminSecret  string `yaml:"-"`
}

// RedisConfig holds the remote record's Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// SyncConfig tunes the sync bridge timing. Values are milliseconds.
type SyncConfig struct {
	DebounceMs int `yaml:"debounce_ms,omitempty"`
	GuardMs    int `yaml:"guard_ms,omitempty"`
}

// Debounce returns the outbound debounce interval.
func (s SyncConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// Guard returns the echo-suppression guard window.
func (s SyncConfig) Guard() time.Duration {
	return time.Duration(s.GuardMs) * time.Millisecond
}

// Validate checks the configuration and applies defaults.
func (c *Config) Validate() error {
	if c.Instance == "" {
		return fmt.Errorf("instance is required")
	}
	if c.DataDir == "" {
		c.DataDir = ".hanvit"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Sync.DebounceMs == 0 {
		c.Sync.DebounceMs = 1000
	}
	if c.Sync.GuardMs == 0 {
		c.Sync.GuardMs = 200
	}
	if c.Sync.DebounceMs < 0 || c.Sync.GuardMs < 0 {
		return fmt.Errorf("sync intervals must be positive (debounce_ms=%d, guard_ms=%d)", c.Sync.DebounceMs, c.Sync.GuardMs)
	}
	return nil
}

// Load reads and validates hanvit.yml from the specified path, loading a
// .env file beside the working directory first when one exists.
func Load(path string) (*Config, error) {
	// Missing .env is fine; exported variables still apply.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	config.GeminiAPIKey = os.Getenv(EnvGeminiAPIKey)
	config.AdminSecret = os.Getenv(EnvAdminSecret)

	return &config, nil
}
