package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"resupplycharts/internal/logger"
)

// GCSClient stores files as objects in a Google Cloud Storage bucket
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a client for bucketName using default credentials
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("GCS bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.Component("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

func objectName(p string) string {
	return strings.TrimPrefix(p, "/")
}

// StoreFile uploads data to the object at p
func (g *GCSClient) StoreFile(ctx context.Context, p string, data []byte) error {
	name := objectName(p)
	writer := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	writer.ContentType = GetContentType(name)
	writer.CacheControl = "public, max-age=300"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	g.log.Debug("stored object", map[string]interface{}{
		"object": fmt.Sprintf("gs://%s/%s", g.bucket, name),
		"bytes":  len(data),
	})
	return nil
}

// GetFile downloads the object at p
func (g *GCSClient) GetFile(ctx context.Context, p string) ([]byte, error) {
	reader, err := g.client.Bucket(g.bucket).Object(objectName(p)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", p, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", p, err)
	}
	return data, nil
}

// ListDir lists objects under dir. Without recursive it lists one level,
// using the "/" delimiter to report sub-directories.
func (g *GCSClient) ListDir(ctx context.Context, dir string, recursive bool) ([]string, error) {
	prefix := strings.Trim(dir, "/")
	if prefix != "" {
		prefix += "/"
	}
	query := &storage.Query{Prefix: prefix}
	if !recursive {
		query.Delimiter = "/"
	}

	var names []string
	it := g.client.Bucket(g.bucket).Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if attrs.Prefix != "" {
			names = append(names, attrs.Prefix)
			continue
		}
		names = append(names, attrs.Name)
	}
	sort.Strings(names)
	return names, nil
}

// FileExists reports whether the object at p exists
func (g *GCSClient) FileExists(ctx context.Context, p string) (bool, error) {
	_, err := g.client.Bucket(g.bucket).Object(objectName(p)).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %s: %w", p, err)
	}
	return true, nil
}
