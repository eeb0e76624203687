package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// FileStorage keeps one file per key inside a directory. Writes go through
// a temporary file and a rename so a reader never sees a partial value.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed creating storage directory=%s with error=%w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}

func (s *FileStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed reading key=%s with error=%w", key, err)
	}
	return string(b), true, nil
}

func (s *FileStorage) SetItem(_ context.Context, key string, value string) error {
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed creating temp file for key=%s with error=%w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed writing key=%s with error=%w", key, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed closing temp file for key=%s with error=%w", key, err)
	}
	if err = os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("failed replacing key=%s with error=%w", key, err)
	}
	return nil
}

func (s *FileStorage) RemoveItem(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed removing key=%s with error=%w", key, err)
	}
	return nil
}

func (s *FileStorage) Close() error { return nil }
