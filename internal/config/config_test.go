package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	cfg.Store.Kind = "memory"
	return cfg
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hatchctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	InitViper(v, "")
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, time.Second, cfg.API.RetryDelay)
	assert.Equal(t, 3, cfg.API.RateLimitRetries)
	assert.Equal(t, 2, cfg.API.NetworkRetries)
	assert.Equal(t, 60*time.Second, cfg.API.CacheTTL)
	assert.Equal(t, "file", cfg.Store.Kind)
	assert.Equal(t, "127.0.0.1:8000", cfg.Mock.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadReadsFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://admin.hatchsocial.com/api
  timeout: 10s
  hybrid: true
store:
  kind: redis
  redis:
    addr: cache:6379
    prefix: "dash:"
mock:
  seed: 7
  latency: 250ms
log:
  level: debug
  json: true
`)

	v := viper.New()
	InitViper(v, path)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "https://admin.hatchsocial.com/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.True(t, cfg.API.Hybrid)
	assert.Equal(t, "redis", cfg.Store.Kind)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "dash:", cfg.Store.Redis.Prefix)
	assert.Equal(t, int64(7), cfg.Mock.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.Mock.Latency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: http://from-file/api\n")
	t.Setenv("HATCH_API_BASE_URL", "http://from-env/api")
	t.Setenv("HATCH_API_NETWORK_RETRIES", "5")
	t.Setenv("HATCH_STORE_KIND", "memory")

	v := viper.New()
	InitViper(v, path)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env/api", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.NetworkRetries)
	assert.Equal(t, "memory", cfg.Store.Kind)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	v := viper.New()
	InitViper(v, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadInvalidConfig(t *testing.T) {
	path := writeConfig(t, "store:\n  kind: sqlite\nlog:\n  level: loud\n")

	v := viper.New()
	InitViper(v, path)
	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
	assert.Contains(t, err.Error(), "Config.Store.Kind must be one of: memory file redis")
	assert.Contains(t, err.Error(), "Config.Log.Level must be one of: trace debug info warn error")
}

func TestFindConfigFileInPaths(t *testing.T) {
	empty := t.TempDir()
	withYML := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(withYML, "hatchctl.yml"), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(empty, "hatchctl"), []byte("binary"), 0o700))

	assert.Equal(t, filepath.Join(withYML, "hatchctl.yml"), findConfigFileInPaths([]string{empty, withYML}))
	assert.Empty(t, findConfigFileInPaths([]string{empty}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad url", func(c *Config) { c.API.BaseURL = "not a url" }, "Config.API.BaseURL must be a valid URL"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "Config.API.Timeout must be greater than 0"},
		{"too many 429 retries", func(c *Config) { c.API.RateLimitRetries = 4 }, "Config.API.RateLimitRetries must be at most 3"},
		{"negative network retries", func(c *Config) { c.API.NetworkRetries = -1 }, "Config.API.NetworkRetries must be at least 0"},
		{"file store without path", func(c *Config) { c.Store.Kind = "file"; c.Store.Path = "" }, "Config.Store.Path is required when Kind file"},
		{"bad redis addr", func(c *Config) { c.Store.Redis.Addr = "nohostport" }, "Config.Store.Redis.Addr must be a valid host:port"},
		{"bad mock addr", func(c *Config) { c.Mock.Addr = "" }, "Config.Mock.Addr is required"},
		{"relative base path", func(c *Config) { c.Mock.BasePath = "api" }, `Config.Mock.BasePath must start with "/"`},
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }, "Config.Log.Level must be one of"},
		{"hybrid without cache", func(c *Config) { c.API.Hybrid = true; c.API.CacheTTL = 0 }, "Config.API.Hybrid cannot be set when CacheTTL 0"},
		{"hybrid with cache", func(c *Config) { c.API.Hybrid = true; c.API.CacheTTL = time.Minute }, ""},
		{"metrics path", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Path = "metrics" }, `Config.Metrics.Path must start with "/"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.API.BaseURL = ""
	cfg.Store.Kind = "disk"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, "Config.API.BaseURL is required; Config.Store.Kind must be one of: memory file redis", err.Error())
}

func TestSetDefaultsRedisAddr(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Kind: "redis"}}
	cfg.SetDefaults()
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	assert.Empty(t, cfg.Metrics.Path)
}
