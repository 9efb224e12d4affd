package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadAppliesFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
http:
  address: ":9090"
forecast:
  forecastDays: 3
  cacheTtl: 5m
storage:
  driver: sqlite
  sqlite:
    path: /tmp/fit.db
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_ADDRESS", ":7070")
	t.Setenv("VALKEY_ENABLED", "true")
	t.Setenv("VALKEY_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, 3, cfg.Forecast.ForecastDays)
	require.Equal(t, 5*time.Minute, cfg.Forecast.CacheTTL)
	require.Equal(t, StorageSQLite, cfg.Storage.Driver)
	require.Equal(t, "/tmp/fit.db", cfg.Storage.SQLite.Path)
	require.True(t, cfg.Cache.Valkey.Enabled)
}

func TestValidateRejectsBadSettings(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown driver":         func(c *Config) { c.Storage.Driver = "mysql" },
		"postgres without dsn":   func(c *Config) { c.Storage.Driver = StoragePostgres },
		"valkey without address": func(c *Config) { c.Cache.Valkey.Enabled = true },
		"zero forecast days":     func(c *Config) { c.Forecast.ForecastDays = 0 },
		"empty secret":           func(c *Config) { c.Auth.Secret = " " },
		"refresh shorter":        func(c *Config) { c.Auth.RefreshTokenTTL = time.Minute },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"https://a.example", "https://b.example"}, splitList(" https://a.example, ,https://b.example "))
}
