package storage

import "context"

// Storage answers the fill-up completion checks and archives finished
// episodes. Episodes are always downloaded and tagged on the local
// filesystem first; Archive then mirrors them to the backend.
type Storage interface {
	// Exists reports whether the episode at path is already complete.
	Exists(path string) bool

	// EnsureDir creates the output folder if needed.
	EnsureDir(dir string) error

	// Archive mirrors a finished episode to the backend. A no-op for
	// local storage.
	Archive(ctx context.Context, localPath string) error

	Close() error
}

// New returns the storage backend for the given type ("local" or "gcs").
func New(ctx context.Context, storageType, bucket, objectPrefix, credentialsFile string) (Storage, error) {
	if storageType == "gcs" {
		return NewGCSStorage(ctx, bucket, objectPrefix, credentialsFile)
	}
	return NewLocalStorage(), nil
}
