package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// LocalClient stores files under a base directory on the local file system
type LocalClient struct {
	baseDir string
}

// NewLocalClient creates the base directory if needed
func NewLocalClient(baseDir string) (*LocalClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalClient{baseDir: baseDir}, nil
}

// BaseDir returns the storage root
func (l *LocalClient) BaseDir() string {
	return l.baseDir
}

// Close is a no-op for local storage
func (l *LocalClient) Close() error {
	return nil
}

// resolve maps a storage path to a file system path inside baseDir
func (l *LocalClient) resolve(p string) (string, error) {
	slashed := filepath.ToSlash(p)
	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return "", fmt.Errorf("storage path %q escapes the base directory", p)
		}
	}
	clean := strings.TrimPrefix(path.Clean("/"+slashed), "/")
	return filepath.Join(l.baseDir, filepath.FromSlash(clean)), nil
}

// StoreFile writes data at p
func (l *LocalClient) StoreFile(ctx context.Context, p string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", p, err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", p, err)
	}
	return nil
}

// GetFile reads the file at p
func (l *LocalClient) GetFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", p, err)
	}
	return data, nil
}

// ListDir lists files under dir
func (l *LocalClient) ListDir(ctx context.Context, dir string, recursive bool) ([]string, error) {
	root, err := l.resolve(dir)
	if err != nil {
		return nil, err
	}
	prefix := strings.Trim(filepath.ToSlash(dir), "/")
	join := func(name string) string {
		if prefix == "" || prefix == "." {
			return name
		}
		return prefix + "/" + name
	}

	if !recursive {
		entries, err := os.ReadDir(root)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
		}
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			name := join(e.Name())
			if e.IsDir() {
				name += "/"
			}
			out = append(out, name)
		}
		return out, nil
	}

	var out []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		out = append(out, join(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}
	sort.Strings(out)
	return out, nil
}

// FileExists reports whether a regular file exists at p
func (l *LocalClient) FileExists(ctx context.Context, p string) (bool, error) {
	full, err := l.resolve(p)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	return !info.IsDir(), nil
}
