package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStorage implements Storage against a Google Cloud Storage bucket. The
// local file stays the working copy; finished episodes are mirrored into the
// bucket, and an episode already archived there counts as downloaded.
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
}

// NewGCSStorage creates a GCSStorage instance. With an empty credentialsFile
// the application default credentials are used.
func NewGCSStorage(ctx context.Context, bucketName, objectPrefix, credentialsFile string) (*GCSStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		// Use application default credentials
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:       client,
		bucket:       bucketName,
		objectPrefix: strings.TrimSuffix(objectPrefix, "/"),
	}, nil
}

func (s *GCSStorage) objectName(localPath string) string {
	name := filepath.Base(localPath)
	if s.objectPrefix != "" {
		name = s.objectPrefix + "/" + name
	}
	return name
}

// Exists reports whether the episode is on disk or already in the bucket.
func (s *GCSStorage) Exists(path string) bool {
	if _, err := os.Stat(path); err == nil {
		return true
	}

	// Lookup failures count as "not archived" so the episode is downloaded
	// again rather than silently skipped.
	_, err := s.client.Bucket(s.bucket).Object(s.objectName(path)).Attrs(context.Background())
	return err == nil
}

// EnsureDir creates the local output folder if needed.
func (s *GCSStorage) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// Archive uploads a finished episode into the bucket.
func (s *GCSStorage) Archive(ctx context.Context, localPath string) error {
	in, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s for archiving: %w", localPath, err)
	}
	defer in.Close()

	w := s.client.Bucket(s.bucket).Object(s.objectName(localPath)).NewWriter(ctx)
	w.ContentType = "audio/mpeg"
	if _, err := io.Copy(w, in); err != nil {
		w.Close()
		return fmt.Errorf("failed to upload %s: %w", localPath, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload of %s: %w", localPath, err)
	}
	return nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}
