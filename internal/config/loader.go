package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:8000/api"
	// EnvPrefix prefixes every environment override, e.g. HATCH_API_BASE_URL.
	EnvPrefix = "HATCH"

	configName = "hatchctl"
)

// keys lists every setting so AutomaticEnv can resolve it during Unmarshal.
var keys = []string{
	"api.base_url",
	"api.timeout",
	"api.retry_delay",
	"api.rate_limit_retries",
	"api.network_retries",
	"api.cache_ttl",
	"api.max_replay_attempts",
	"api.drain_interval",
	"api.hybrid",
	"api.debug",
	"store.kind",
	"store.path",
	"store.redis.addr",
	"store.redis.username",
	"store.redis.password",
	"store.redis.db",
	"store.redis.prefix",
	"mock.addr",
	"mock.base_path",
	"mock.seed",
	"mock.latency",
	"log.level",
	"log.json",
	"metrics.enabled",
	"metrics.path",
}

// InitViper points v at configFile, or at the first hatchctl.yaml/.yml found
// in the working directory or ~/.hatchctl, and enables HATCH_* overrides.
func InitViper(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		v.SetConfigFile(found)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
	setViperDefaults(v)
}

func findConfigFile() string {
	home, _ := os.UserHomeDir()
	return findConfigFileInPaths([]string{".", filepath.Join(home, ".hatchctl")})
}

func findConfigFileInPaths(paths []string) string {
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, configName+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry_delay", time.Second)
	v.SetDefault("api.rate_limit_retries", 3)
	v.SetDefault("api.network_retries", 2)
	v.SetDefault("api.cache_ttl", 60*time.Second)
	v.SetDefault("api.max_replay_attempts", 3)
	v.SetDefault("api.drain_interval", 30*time.Second)
	v.SetDefault("store.kind", "file")
	v.SetDefault("store.path", DefaultStorePath())
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("mock.addr", "127.0.0.1:8000")
	v.SetDefault("mock.base_path", "/api")
	v.SetDefault("mock.seed", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.path", "/metrics")
}

// DefaultStorePath is ~/.hatchctl/state.json, or ./.hatchctl/state.json when
// the home directory is unknown.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".hatchctl", "state.json")
}

// Load reads the configured file (a missing file is not an error), applies
// environment overrides and defaults, and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
