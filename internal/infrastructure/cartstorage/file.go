package cartstorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage keeps the cart blob in a single file on disk
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage creates a file-backed storage at the given path. Parent
// directories are created on the first save.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Save writes the blob atomically: write to a temp file, then rename
func (s *FileStorage) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cart storage directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cart blob: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit cart blob: %w", err)
	}
	return nil
}

// Load reads the blob, or returns (nil, nil) when no cart has been saved
func (s *FileStorage) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart blob: %w", err)
	}
	return data, nil
}
