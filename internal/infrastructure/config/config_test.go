package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "ic-orders-bff", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.StaleAfter)
	assert.Equal(t, 30*time.Second, cfg.Cache.FetchTimeout)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "/metrics", cfg.Telemetry.MetricsPath)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ICO_APP_PORT", "9000")
	t.Setenv("ICO_BACKEND_BASE_URL", "https://api.example.com")
	t.Setenv("ICO_CACHE_STALE_AFTER", "90s")
	t.Setenv("ICO_REDIS_ENABLED", "true")
	t.Setenv("ICO_HTTP_RATE_LIMIT_REQUESTS", "2.5")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Cache.StaleAfter)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 2.5, cfg.HTTP.RateLimitRequests)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[app]
name = "orders"

[backend]
base_url = "http://backend:5000"
timeout = "10s"

[database]
driver = "postgres"
dbname = "orders"

[storage]
enabled = true
bucket = "exports"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "orders", cfg.App.Name)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://postgres:@localhost:5432/orders?sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "exports", cfg.Storage.Bucket)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"relative backend url", func(c *Config) { c.Backend.BaseURL = "backend:5000" }, "backend.base_url"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"idle exceeds open", func(c *Config) { c.Database.MaxIdleConns = 50 }, "max_idle_conns"},
		{"storage without bucket", func(c *Config) { c.Storage.Enabled = true }, "storage.bucket"},
		{"sampling ratio", func(c *Config) { c.Telemetry.SamplingRatio = 2 }, "sampling_ratio"},
		{"production short secret", func(c *Config) {
			c.App.Env = "production"
			c.Session.Secret = "short"
		}, "session.secret"},
		{"production insecure cookie", func(c *Config) {
			c.App.Env = "production"
			c.Session.Secret = "0123456789abcdef0123456789abcdef"
		}, "cookie_secure"},
		{"production wildcard cors", func(c *Config) {
			c.App.Env = "production"
			c.Session.Secret = "0123456789abcdef0123456789abcdef"
			c.Session.CookieSecure = true
			c.HTTP.CORSAllowOrigins = []string{"*"}
		}, "cors_allow_origins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, valid().validate())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
