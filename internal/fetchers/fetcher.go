package fetchers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"resupplycharts/internal/logger"
	"resupplycharts/internal/models"
)

// ErrEmptySnapshot is returned when a source yields a document with no content
var ErrEmptySnapshot = errors.New("snapshot document is empty")

// Plausible Unix times lie between these bounds; anything outside is a counter,
// a unit mistake or junk
const (
	minUnixSeconds = 1e9
	maxUnixSeconds = 1e11
)

// Source yields the latest market data snapshot. Each call performs one fetch;
// callers decide when to refresh.
type Source interface {
	Latest(ctx context.Context) (*models.Snapshot, error)
}

// HTTPOptions tunes the HTTP client
type HTTPOptions struct {
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
}

// HTTPSource fetches the snapshot document over HTTP
type HTTPSource struct {
	url    string
	client *resty.Client
	log    *logger.Logger
}

// NewHTTPSource creates a source for url. Zero options use a 30s timeout and
// three retries two seconds apart.
func NewHTTPSource(url string, opts HTTPOptions) *HTTPSource {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 2 * time.Second
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(opts.Retries)
	client.SetRetryWaitTime(opts.RetryWait)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r != nil && r.StatusCode() >= http.StatusInternalServerError
	})

	return &HTTPSource{
		url:    url,
		client: client,
		log:    logger.Component("fetcher"),
	}
}

// Latest downloads and parses the snapshot
func (s *HTTPSource) Latest(ctx context.Context) (*models.Snapshot, error) {
	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("snapshot endpoint returned status %d", resp.StatusCode())
	}

	snap, err := ParseSnapshot(resp.Body())
	if err != nil {
		return nil, err
	}
	snap.Source = s.url

	s.log.Debug("snapshot fetched", map[string]interface{}{
		"url":      s.url,
		"bytes":    len(resp.Body()),
		"duration": time.Since(start).String(),
	})
	return snap, nil
}

// FileSource reads the snapshot from a local JSON file
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path on every call
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Latest reads and parses the file
func (s *FileSource) Latest(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, err
	}
	snap.Source = s.path
	return snap, nil
}

// ParseSnapshot decodes a snapshot document. last_update may be a number or a
// numeric string of Unix seconds; other values leave UpdatedAt nil.
func ParseSnapshot(data []byte) (*models.Snapshot, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptySnapshot
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptySnapshot
	}

	snap := &models.Snapshot{
		Raw:       raw,
		FetchedAt: time.Now().UTC(),
	}
	if lu, ok := raw["last_update"]; ok && lu != nil {
		snap.LastUpdate = stringify(lu)
		if ts, ok := toFloat(lu); ok && ts > minUnixSeconds && ts < maxUnixSeconds {
			t := time.Unix(int64(ts), 0).UTC()
			snap.UpdatedAt = &t
		}
	}
	return snap, nil
}

// stringify renders a decoded JSON scalar the way it was published
func stringify(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
