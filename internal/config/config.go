// Package config loads hatchctl settings from a YAML file, HATCH_* environment
// variables and command-line flags.
package config

import "time"

// Config is the full hatchctl configuration.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Mock    MockConfig    `yaml:"mock" mapstructure:"mock"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// APIConfig configures the dashboard API client.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	RetryDelay        time.Duration `yaml:"retry_delay" mapstructure:"retry_delay" validate:"gte=0"`
	RateLimitRetries  int           `yaml:"rate_limit_retries" mapstructure:"rate_limit_retries" validate:"gte=0,lte=3"`
	NetworkRetries    int           `yaml:"network_retries" mapstructure:"network_retries" validate:"gte=0"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl" validate:"gte=0"`
	MaxReplayAttempts int           `yaml:"max_replay_attempts" mapstructure:"max_replay_attempts" validate:"gte=1"`
	DrainInterval     time.Duration `yaml:"drain_interval" mapstructure:"drain_interval" validate:"gte=0"`
	// Hybrid serves the built-in mock dataset when the backend is unreachable.
	// Stale cache entries are its first fallback, so it needs CacheTTL > 0.
	Hybrid bool `yaml:"hybrid" mapstructure:"hybrid" validate:"excluded_if=CacheTTL 0"`
	Debug  bool `yaml:"debug" mapstructure:"debug"`
}

// StoreConfig selects where the session and offline data are kept.
type StoreConfig struct {
	Kind  string      `yaml:"kind" mapstructure:"kind" validate:"required,oneof=memory file redis"`
	Path  string      `yaml:"path" mapstructure:"path" validate:"required_if=Kind file"`
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr" validate:"omitempty,hostname_port"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db" validate:"gte=0"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`
}

// MockConfig configures the standalone mock backend.
type MockConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr" validate:"required,hostname_port"`
	BasePath string        `yaml:"base_path" mapstructure:"base_path" validate:"required,startswith=/"`
	Seed     int64         `yaml:"seed" mapstructure:"seed"`
	Latency  time.Duration `yaml:"latency" mapstructure:"latency" validate:"gte=0"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"required,log_level"`
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

// MetricsConfig exposes Prometheus metrics next to the mock server.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path" validate:"required_if=Enabled true,omitempty,startswith=/"`
}

// SetDefaults fills zero values left after unmarshalling.
func (c *Config) SetDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.API.MaxReplayAttempts == 0 {
		c.API.MaxReplayAttempts = 3
	}
	if c.Store.Kind == "" {
		c.Store.Kind = "file"
	}
	if c.Store.Kind == "redis" && c.Store.Redis.Addr == "" {
		c.Store.Redis.Addr = "localhost:6379"
	}
	if c.Mock.Addr == "" {
		c.Mock.Addr = "127.0.0.1:8000"
	}
	if c.Mock.BasePath == "" {
		c.Mock.BasePath = "/api"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}
