package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested file does not exist
var ErrNotFound = errors.New("file not found")

// Client stores report artifacts. Paths are slash separated and relative to
// the storage root.
type Client interface {
	// Close releases the client's resources
	Close() error

	// StoreFile writes data at path, creating parent directories as needed
	StoreFile(ctx context.Context, path string, data []byte) error

	// GetFile reads the file at path, ErrNotFound if it does not exist
	GetFile(ctx context.Context, path string) ([]byte, error)

	// ListDir lists file paths under dir. Without recursive it returns only
	// the direct children, with sub-directories suffixed by "/".
	ListDir(ctx context.Context, dir string, recursive bool) ([]string, error)

	// FileExists reports whether a file exists at path
	FileExists(ctx context.Context, path string) (bool, error)
}
