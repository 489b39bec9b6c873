package storage

import (
	"context"
	"fmt"
	"os"
)

// LocalStorage implements Storage on the local filesystem. The episode files
// themselves are the durable state; there is no manifest.
type LocalStorage struct{}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

// Exists checks for the episode file on disk.
func (s *LocalStorage) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the output folder if needed.
func (s *LocalStorage) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// Archive is a no-op; the downloaded file already lives where it belongs.
func (s *LocalStorage) Archive(ctx context.Context, localPath string) error {
	return nil
}

func (s *LocalStorage) Close() error {
	return nil
}
