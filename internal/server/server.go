package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resupplycharts/internal/config"
	"resupplycharts/internal/dashboard"
	"resupplycharts/internal/fetchers"
	"resupplycharts/internal/logger"
	"resupplycharts/internal/models"
	"resupplycharts/internal/reports"
	"resupplycharts/internal/storage"
)

// SnapshotCacheTTL bounds how often the upstream snapshot is refetched
const SnapshotCacheTTL = time.Minute

// Server represents the chart service
type Server struct {
	Config   *config.Config
	Catalog  *dashboard.Catalog
	Source   fetchers.Source
	Storage  storage.Client
	Reports  *reports.Service
	Metrics  *Metrics
	registry *prometheus.Registry

	generateMutex sync.Mutex
	invalidate    func() // drops a cached snapshot before report generation
	log           *logger.Logger
}

// invalidator is implemented by caching sources such as fetchers.CachedSource
type invalidator interface {
	Invalidate()
}

// NewSource builds the snapshot source for cfg: the snapshot file in mockup
// mode, the remote document otherwise
func NewSource(cfg *config.Config) fetchers.Source {
	if cfg.MockupMode {
		return fetchers.NewFileSource(cfg.SnapshotFile)
	}
	return fetchers.NewHTTPSource(cfg.SnapshotURL, fetchers.HTTPOptions{
		Timeout: cfg.FetchTimeout,
		Retries: cfg.FetchRetries,
	})
}

// NewServer creates a server over source, storing reports with client
func NewServer(cfg *config.Config, source fetchers.Source, client storage.Client) (*Server, error) {
	catalog := dashboard.Default()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		Config:   cfg,
		Catalog:  catalog,
		Storage:  client,
		Metrics:  NewMetrics(registry),
		registry: registry,
		log:      logger.Component("server"),
	}
	s.Source = &instrumentedSource{source: source, errors: s.Metrics.SnapshotFetchErrors}
	if c, ok := source.(invalidator); ok {
		s.invalidate = c.Invalidate
	}

	generator, err := reports.NewGenerator(s.Source, catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report generator: %w", err)
	}
	s.Reports = reports.NewService(generator, reports.NewStorageOrchestrator(client))

	return s, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.HandleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc("/charts", s.HandleListCharts).Methods(http.MethodGet)
	r.HandleFunc("/charts/{name:[a-z0-9-]+}.svg", s.HandleChartSVG).Methods(http.MethodGet)
	r.HandleFunc("/charts/{name:[a-z0-9-]+}.png", s.HandleChartPNG).Methods(http.MethodGet)

	r.HandleFunc("/generate", s.HandleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/reports", s.HandleListReports).Methods(http.MethodGet)
	r.HandleFunc("/reports/latest", s.HandleLatestReport).Methods(http.MethodGet)
	r.HandleFunc("/files/{path:.+}", s.HandleFileProxy).Methods(http.MethodGet)

	r.HandleFunc("/", s.HandleRoot).Methods(http.MethodGet)

	return r
}

// Handler returns the routes wrapped in access logging
func (s *Server) Handler() http.Handler {
	return handlers.LoggingHandler(s.log.Writer(logger.INFO), s.SetupRoutes())
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}

// instrumentedSource counts failed snapshot fetches
type instrumentedSource struct {
	source fetchers.Source
	errors prometheus.Counter
}

func (i *instrumentedSource) Latest(ctx context.Context) (*models.Snapshot, error) {
	snap, err := i.source.Latest(ctx)
	if err != nil {
		i.errors.Inc()
	}
	return snap, err
}
