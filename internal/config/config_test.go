// ABOUTME: Tests for config loading, defaults, and backend fallback.
// ABOUTME: Uses temp files instead of the real XDG paths.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, 80, cfg.WordWrap)
}

func TestLoadFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"postgres_dsn":"postgres://x"}`), 0600))

	cfg, err := loadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, BackendLocal, cfg.Backend, "empty backend should fall back to local")
	assert.Equal(t, "postgres://x", cfg.PostgresDSN)
	assert.Equal(t, 80, cfg.WordWrap)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0600))

	_, err := loadFrom(path)
	assert.Error(t, err)
}
