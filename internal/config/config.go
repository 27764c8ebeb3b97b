package config

import (
	"time"
)

// Config represents the complete application configuration, merged from
// defaults, an optional config file, and SWAPLENS_* environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Client    ClientConfig    `mapstructure:"client"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Health    HealthConfig    `mapstructure:"health"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Output    OutputConfig    `mapstructure:"output"`
}

// ServerConfig contains HTTP and MCP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Transport       string        `mapstructure:"transport"`
	SSEAddr         string        `mapstructure:"sse_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ClientConfig contains upstream aggregation API settings.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	ChainID int           `mapstructure:"chain_id"`
}

// RateLimitConfig controls per-client admission for tool calls and HTTP
// requests. A Limit of zero disables rate limiting.
type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// HealthConfig contains health aggregation thresholds.
type HealthConfig struct {
	FailureRateThreshold float64       `mapstructure:"failure_rate_threshold"`
	ProbeTimeout         time.Duration `mapstructure:"probe_timeout"`
}

// LoggingConfig contains logging configuration.
// Valid levels: debug, info, warn, error.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig controls CLI rendering.
// Valid formats: table, json.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration used before any file or
// environment overrides apply.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			Transport:       "stdio",
			SSEAddr:         ":8081",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Client: ClientConfig{
			BaseURL: "https://api.1inch.dev",
			Timeout: 30 * time.Second,
			ChainID: 1,
		},
		RateLimit: RateLimitConfig{
			Limit:  10,
			Window: time.Second,
		},
		Health: HealthConfig{
			FailureRateThreshold: 0.25,
			ProbeTimeout:         5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}
