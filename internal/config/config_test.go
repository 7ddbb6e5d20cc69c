package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"server": {"host": "0.0.0.0", "port": 8080},
		"database": {"host": "localhost", "port": 5432, "user": "market", "password": "secret", "dbname": "market", "sslmode": "disable"},
		"redis": {"host": "localhost", "port": 6379},
		"market": {
			"fee_account": "marketplace_fees",
			"whitelisted_minters": ["founder", "curator"],
			"trending_refresh_seconds": 30
		}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "marketplace_fees", cfg.Market.FeeAccount)
	assert.Equal(t, []string{"founder", "curator"}, cfg.Market.WhitelistedMinters)
	assert.Equal(t, 30, cfg.Market.TrendingRefreshSeconds)

	// Defaults fill in what the file omits.
	assert.Equal(t, 9090, cfg.Market.MetricsPort)
	assert.Equal(t, 10, cfg.Market.TrendingLimit)
}

func TestLoadConfigRequiresFeeAccount(t *testing.T) {
	path := writeConfigFile(t, `{"market": {}}`)

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "fee_account")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "market",
		Password: "secret",
		DBName:   "marketplace",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=market password=secret dbname=marketplace sslmode=disable",
		cfg.GetDSN())
}
