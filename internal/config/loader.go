// Package config provides centralized configuration management for swaplens.
// Configuration merges three layers: built-in defaults, an optional YAML
// config file, and SWAPLENS_* environment variables, with later layers
// winning.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SWAPLENS"

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// Load merges defaults, the config file at path (or the default location
// when path is empty), and environment overrides into a typed Config.
// A missing config file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if defaultPath := DefaultConfigPath(); defaultPath != "" {
		v.SetConfigFile(defaultPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound *os.PathError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file %s: %w", defaultPath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.transport", defaults.Server.Transport)
	v.SetDefault("server.sse_addr", defaults.Server.SSEAddr)
	v.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", defaults.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)

	v.SetDefault("client.base_url", defaults.Client.BaseURL)
	v.SetDefault("client.api_key", defaults.Client.APIKey)
	v.SetDefault("client.timeout", defaults.Client.Timeout)
	v.SetDefault("client.chain_id", defaults.Client.ChainID)

	v.SetDefault("rate_limit.limit", defaults.RateLimit.Limit)
	v.SetDefault("rate_limit.window", defaults.RateLimit.Window)

	v.SetDefault("health.failure_rate_threshold", defaults.Health.FailureRateThreshold)
	v.SetDefault("health.probe_timeout", defaults.Health.ProbeTimeout)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("output.format", defaults.Output.Format)
}

func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Server.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("invalid server transport %q (want stdio or sse)", c.Server.Transport)
	}
	if c.RateLimit.Limit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", c.RateLimit.Limit)
	}
	if c.RateLimit.Limit > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", c.RateLimit.Window)
	}
	if c.Health.FailureRateThreshold < 0 || c.Health.FailureRateThreshold > 1 {
		return fmt.Errorf("failure rate threshold must be in [0,1], got %g", c.Health.FailureRateThreshold)
	}
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("invalid output format %q (want table or json)", c.Output.Format)
	}
	return nil
}

// GetConfig returns the current application configuration (thread-safe).
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "swaplens", "config.yaml")
}

// WriteDefault writes the built-in defaults to path as YAML, creating
// parent directories as needed. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out, err := yaml.Marshal(defaultFileContent())
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}

	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// defaultFileContent mirrors Default() in plain YAML-friendly types so
// durations render as strings like "30s" rather than nanosecond ints.
func defaultFileContent() map[string]any {
	d := Default()
	return map[string]any{
		"server": map[string]any{
			"host":             d.Server.Host,
			"port":             d.Server.Port,
			"transport":        d.Server.Transport,
			"sse_addr":         d.Server.SSEAddr,
			"read_timeout":     d.Server.ReadTimeout.String(),
			"write_timeout":    d.Server.WriteTimeout.String(),
			"idle_timeout":     d.Server.IdleTimeout.String(),
			"shutdown_timeout": d.Server.ShutdownTimeout.String(),
		},
		"client": map[string]any{
			"base_url": d.Client.BaseURL,
			"timeout":  d.Client.Timeout.String(),
			"chain_id": d.Client.ChainID,
		},
		"rate_limit": map[string]any{
			"limit":  d.RateLimit.Limit,
			"window": d.RateLimit.Window.String(),
		},
		"health": map[string]any{
			"failure_rate_threshold": d.Health.FailureRateThreshold,
			"probe_timeout":          d.Health.ProbeTimeout.String(),
		},
		"logging": map[string]any{
			"level": d.Logging.Level,
		},
		"output": map[string]any{
			"format": d.Output.Format,
		},
	}
}
