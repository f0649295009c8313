package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// ReportIndex is the page every report folder contains
const ReportIndex = "index.html"

// GenerateReportFolderPath generates the folder for a report built at timestamp.
// Format: YYYY/MM/DD/Dashboard-YYYY-MM-DD-HH-MM-SS (UTC)
func GenerateReportFolderPath(timestamp time.Time) string {
	t := timestamp.UTC()
	return fmt.Sprintf("%04d/%02d/%02d/Dashboard-%04d-%02d-%02d-%02d-%02d-%02d",
		t.Year(), t.Month(), t.Day(),
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second())
}

var contentTypes = map[string]string{
	".json": "application/json",
	".txt":  "text/plain",
	".html": "text/html; charset=utf-8",
	".css":  "text/css",
	".md":   "text/markdown",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ListReports returns the index pages of stored reports, newest first. Folder
// names sort chronologically, so the reverse lexical order is newest first.
func ListReports(ctx context.Context, c Client, limit int) ([]string, error) {
	files, err := c.ListDir(ctx, "", true)
	if err != nil {
		return nil, err
	}

	var reports []string
	for _, f := range files {
		if path.Base(f) == ReportIndex && strings.Contains(f, "/Dashboard-") {
			reports = append(reports, f)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(reports)))

	if limit > 0 && limit < len(reports) {
		reports = reports[:limit]
	}
	return reports, nil
}

// LatestReport returns the newest report index page
func LatestReport(ctx context.Context, c Client) (string, error) {
	reports, err := ListReports(ctx, c, 1)
	if err != nil {
		return "", err
	}
	if len(reports) == 0 {
		return "", ErrNotFound
	}
	return reports[0], nil
}
