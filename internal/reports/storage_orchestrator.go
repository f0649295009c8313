package reports

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/samber/lo"

	"resupplycharts/internal/logger"
	"resupplycharts/internal/storage"
)

// StorageOrchestrator writes generated reports to a storage client
type StorageOrchestrator struct {
	storage storage.Client
	log     *logger.Logger
}

// NewStorageOrchestrator creates a storage orchestrator
func NewStorageOrchestrator(client storage.Client) *StorageOrchestrator {
	return &StorageOrchestrator{
		storage: client,
		log:     logger.Component("reports"),
	}
}

// Store writes every report file under the report folder and returns the path
// of the index page. The index is written last so a listed report is complete.
func (so *StorageOrchestrator) Store(ctx context.Context, report *Report) (string, error) {
	names := lo.Without(lo.Keys(report.Files), storage.ReportIndex)
	sort.Strings(names)

	for _, name := range names {
		if err := so.storage.StoreFile(ctx, path.Join(report.FolderPath, name), report.Files[name]); err != nil {
			return "", fmt.Errorf("failed to store %s: %w", name, err)
		}
	}

	index := path.Join(report.FolderPath, storage.ReportIndex)
	if page, ok := report.Files[storage.ReportIndex]; ok {
		if err := so.storage.StoreFile(ctx, index, page); err != nil {
			return "", fmt.Errorf("failed to store report index: %w", err)
		}
	}

	so.log.Info("report stored", map[string]interface{}{
		"index": index,
		"files": len(report.Files),
	})
	return index, nil
}
