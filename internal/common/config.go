// Package common provides shared utilities for Meridian
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the Meridian gateway
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	API         APIConfig     `toml:"api"`
	Session     SessionConfig `toml:"session"`
	Clients     ClientsConfig `toml:"clients"`
	Dashboard   DashConfig    `toml:"dashboard"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds local HTTP gateway configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// APIConfig holds configuration for the remote Meridian Cloud API
type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SessionConfig holds token persistence configuration.
// EncryptionKey, when set, enables at-rest encryption of the session file.
type SessionConfig struct {
	Path          string `toml:"path"`
	EncryptionKey string `toml:"encryption_key"`
}

// ClientsConfig holds auxiliary API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration for insight briefings
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// DashConfig holds dashboard snapshot behaviour
type DashConfig struct {
	RefreshInterval string `toml:"refresh_interval"`
	DefaultRange    string `toml:"default_range"` // 1M, 3M, 6M, 1Y, ALL
}

// GetRefreshInterval parses and returns the snapshot refresh interval
func (c *DashConfig) GetRefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string `toml:"level"`
	Format   string `toml:"format"`
	FilePath string `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8090,
		},
		API: APIConfig{
			BaseURL:   "https://api.meridian.finance",
			RateLimit: 10,
			Timeout:   "30s",
		},
		Session: SessionConfig{
			Path: "data/session.json",
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
		},
		Dashboard: DashConfig{
			RefreshInterval: "15m",
			DefaultRange:    "1Y",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("MERIDIAN_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("MERIDIAN_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("MERIDIAN_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if url := os.Getenv("MERIDIAN_API_URL"); url != "" {
		config.API.BaseURL = url
	}

	if path := os.Getenv("MERIDIAN_SESSION_PATH"); path != "" {
		config.Session.Path = path
	}

	if key := os.Getenv("MERIDIAN_SESSION_KEY"); key != "" {
		config.Session.EncryptionKey = key
	}

	if level := os.Getenv("MERIDIAN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Clients.Gemini.APIKey = key
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
