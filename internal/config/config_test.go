package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, "http://localhost:8080/api/products", cfg.Catalog.BaseURL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "file")
	t.Setenv("STOREFRONT_HTTP_ADDR", ":9090")
	t.Setenv("STOREFRONT_REDIS_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("storage:\n  driver: mongo\nmongo:\n  database: shop\nratelimit:\n  burst: 3\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mongo", cfg.Storage.Driver)
	assert.Equal(t, "shop", cfg.Mongo.Database)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
}

func TestLoadRejectsInvalidStorage(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "cassandra")
	_, err := Load("")
	assert.ErrorContains(t, err, "unknown storage driver")

	t.Setenv("STOREFRONT_STORAGE_DRIVER", "postgres")
	_, err = Load("")
	assert.ErrorContains(t, err, "postgres.url")
}
