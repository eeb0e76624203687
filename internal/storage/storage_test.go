package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Svynct/ignite-rocketshoes/internal/config"
	inErrors "github.com/Svynct/ignite-rocketshoes/internal/errors"
)

const testKey = "@RocketShoes:cart"

// exerciseStorage runs the behaviour every driver must share.
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	c := context.Background()

	_, ok, err := s.GetItem(c, testKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing key should not exist")

	require.NoError(t, s.SetItem(c, testKey, `[{"id":1,"amount":1}]`))
	value, ok, err := s.GetItem(c, testKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1,"amount":1}]`, value)

	require.NoError(t, s.SetItem(c, testKey, `[]`))
	value, ok, err = s.GetItem(c, testKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, value, "set should overwrite")

	require.NoError(t, s.RemoveItem(c, testKey))
	_, ok, err = s.GetItem(c, testKey)
	require.NoError(t, err)
	assert.False(t, ok, "removed key should not exist")

	require.NoError(t, s.RemoveItem(c, testKey), "removing a missing key should not fail")
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "storage")
	s, err := NewFileStorage(dir)
	require.NoError(t, err)
	exerciseStorage(t, s)

	require.NoError(t, s.SetItem(context.Background(), testKey, "value"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files should be cleaned up")
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		expectedErr error
	}{
		{
			name: "memory driver",
			cfg:  config.Config{Storage: config.Storage{Driver: DriverMemory}},
		},
		{
			name: "file driver",
			cfg:  config.Config{Storage: config.Storage{Driver: DriverFile, Directory: t.TempDir()}},
		},
		{
			name:        "unknown driver",
			cfg:         config.Config{Storage: config.Storage{Driver: "indexeddb"}},
			expectedErr: inErrors.ErrUnknownStorageDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(context.Background(), tt.cfg)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			exerciseStorage(t, s)
		})
	}
}
