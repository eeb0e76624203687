package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), "missing", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultStorageKey, cfg.Storage.Key)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 8080, cfg.Application.Port)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
catalog:
  base_url: http://catalog:3333
  timeout: 2s
storage:
  driver: redis
cache:
  host: redis
  port: 6379
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storefront.yaml"), yaml, 0o644))
	t.Setenv("STOREFRONT_STORAGE_KEY", "@Storefront:cart")

	cfg, err := Load(context.Background(), "storefront", dir)
	require.NoError(t, err)

	assert.Equal(t, "http://catalog:3333", cfg.Catalog.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "@Storefront:cart", cfg.Storage.Key)
	assert.Equal(t, uint16(6379), cfg.Cache.Port)
}
