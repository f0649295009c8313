package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"resupplycharts/internal/charts"
)

// Deployment modes select the artifact storage backend
const (
	DeploymentLocal = "local"
	DeploymentGCS   = "gcs"
)

// DefaultSnapshotURL is the published market data document
const DefaultSnapshotURL = "https://raw.githubusercontent.com/wavey0x/open-data/master/resupply_market_data.json"

// Config holds all configuration for the chart service and CLI
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Snapshot source
	SnapshotURL  string        `env:"SNAPSHOT_URL"` // DefaultSnapshotURL when unset
	MockupMode   bool          `env:"MOCKUP_MODE,default=false"`
	SnapshotFile string        `env:"SNAPSHOT_FILE,default=./testdata/snapshot.json"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT,default=30s"`
	FetchRetries int           `env:"FETCH_RETRIES,default=3"`

	// Artifact storage
	DeploymentMode  string `env:"DEPLOYMENT_MODE,default=local"`
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`
	GCPProjectID    string `env:"GCP_PROJECT_ID"`
	GCSBucket       string `env:"GCS_BUCKET"`

	// Rendering
	DefaultChartSize string `env:"DEFAULT_CHART_SIZE,default=large"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, nil)
}

// load processes the environment, or lookuper when it is non-nil
func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	var err error
	if lookuper != nil {
		err = envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper})
	} else {
		err = envconfig.Process(ctx, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the combinations envconfig cannot express
func (c *Config) Validate() error {
	c.DeploymentMode = strings.ToLower(strings.TrimSpace(c.DeploymentMode))
	switch c.DeploymentMode {
	case DeploymentLocal:
	case DeploymentGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when DEPLOYMENT_MODE is %q", DeploymentGCS)
		}
	default:
		return fmt.Errorf("unsupported DEPLOYMENT_MODE %q (want %q or %q)", c.DeploymentMode, DeploymentLocal, DeploymentGCS)
	}

	if strings.TrimSpace(c.SnapshotURL) == "" {
		c.SnapshotURL = DefaultSnapshotURL
	}

	if c.DefaultChartSize == "" {
		c.DefaultChartSize = string(charts.SizeLarge)
	}
	size, err := charts.ParseSize(c.DefaultChartSize)
	if err != nil {
		return fmt.Errorf("invalid DEFAULT_CHART_SIZE: %w", err)
	}
	c.DefaultChartSize = string(size)

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("FETCH_RETRIES must not be negative, got %d", c.FetchRetries)
	}
	if c.MockupMode && c.SnapshotFile == "" {
		return fmt.Errorf("SNAPSHOT_FILE is required in mockup mode")
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
