// ABOUTME: Tests for anonymous identity creation and persistence.
// ABOUTME: Verifies stability across loads and recovery from corrupt files.

package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity")

	first, err := loadOrCreateAt(path)
	require.NoError(t, err)
	_, err = uuid.Parse(first)
	require.NoError(t, err, "identity should be a UUID")

	second, err := loadOrCreateAt(path)
	require.NoError(t, err)
	assert.Equal(t, first, second, "identity should be stable across loads")
}

func TestLoadOrCreateReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity")
	require.NoError(t, os.WriteFile(path, []byte("not-a-uuid\n"), 0600))

	id, err := loadOrCreateAt(path)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "corrupt identity should be replaced with a fresh UUID")

	again, err := loadOrCreateAt(path)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}
