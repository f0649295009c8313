package storage

import (
	"context"
	"fmt"

	"resupplycharts/internal/config"
)

// DeploymentMode selects the storage backend
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = config.DeploymentLocal
	DeploymentGCS   DeploymentMode = config.DeploymentGCS
)

// NewClient creates the storage client for the configured deployment mode
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch DeploymentMode(cfg.DeploymentMode) {
	case DeploymentLocal, "":
		reportsDir := cfg.LocalReportsDir
		if reportsDir == "" {
			reportsDir = "reports"
		}
		client, err := NewLocalClient(reportsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return client, nil

	case DeploymentGCS:
		client, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", cfg.DeploymentMode)
	}
}
