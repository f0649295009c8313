package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"resupplycharts/internal/config"
	"resupplycharts/internal/fetchers"
	"resupplycharts/internal/models"
	"resupplycharts/internal/storage"
)

type failingSource struct{}

func (failingSource) Latest(ctx context.Context) (*models.Snapshot, error) {
	return nil, errors.New("upstream down")
}

func newTestServer(t *testing.T, source fetchers.Source) *Server {
	t.Helper()
	client, err := storage.NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage client: %v", err)
	}
	cfg := &config.Config{
		Port:             "0",
		DeploymentMode:   config.DeploymentLocal,
		DefaultChartSize: "large",
	}
	srv, err := NewServer(cfg, source, client)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func fileSource() fetchers.Source {
	return fetchers.NewFileSource("../../testdata/snapshot.json")
}

func do(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, fileSource())
	rr := do(t, srv, http.MethodGet, "/health")

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("Expected healthy body, got %s", rr.Body.String())
	}
}

func TestListCharts(t *testing.T) {
	srv := newTestServer(t, fileSource())
	rr := do(t, srv, http.MethodGet, "/charts")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var body struct {
		Charts []chartInfo `json:"charts"`
		Count  int         `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Count != 3 || len(body.Charts) != 3 {
		t.Fatalf("Expected 3 charts, got %d", body.Count)
	}
	if body.Charts[0].Name != "sreusd" || !body.Charts[0].Secondary {
		t.Errorf("Expected sreusd with a secondary axis first, got %+v", body.Charts[0])
	}
	if body.Charts[1].LineStyle != "step" {
		t.Errorf("Expected bad-debt to use step style, got %s", body.Charts[1].LineStyle)
	}
}

func TestChartSVG(t *testing.T) {
	srv := newTestServer(t, fileSource())

	tests := []struct {
		name     string
		target   string
		status   int
		contains []string
		excludes []string
	}{
		{
			name:     "catalog size",
			target:   "/charts/sreusd.svg",
			status:   http.StatusOK,
			contains: []string{`width="450"`, "<path"},
			excludes: []string{"<rect"},
		},
		{
			name:     "size override",
			target:   "/charts/bad-debt.svg?size=small",
			status:   http.StatusOK,
			contains: []string{`width="240"`},
		},
		{
			name:     "pointer shows tooltip",
			target:   "/charts/sreusd.svg?pointer=225",
			status:   http.StatusOK,
			contains: []string{"<rect", "APR:"},
		},
		{
			name:     "pointer ignored without hover",
			target:   "/charts/sreusd.svg?hover=false&pointer=225",
			status:   http.StatusOK,
			excludes: []string{"<rect"},
		},
		{
			name:     "pointer outside plot",
			target:   "/charts/sreusd.svg?pointer=5",
			status:   http.StatusOK,
			excludes: []string{"<rect"},
		},
		{
			name:   "unknown chart",
			target: "/charts/nope.svg",
			status: http.StatusNotFound,
		},
		{
			name:   "bad size",
			target: "/charts/sreusd.svg?size=huge",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad pointer",
			target: "/charts/sreusd.svg?pointer=left",
			status: http.StatusBadRequest,
		},
		{
			name:   "NaN pointer",
			target: "/charts/sreusd.svg?pointer=NaN",
			status: http.StatusBadRequest,
		},
		{
			name:   "infinite pointer",
			target: "/charts/sreusd.svg?pointer=-Inf",
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, srv, http.MethodGet, tt.target)
			if rr.Code != tt.status {
				t.Fatalf("Expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			body := rr.Body.String()
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("Expected body to contain %q", want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(body, unwanted) {
					t.Errorf("Expected body not to contain %q", unwanted)
				}
			}
		})
	}

	if got := testutil.ToFloat64(srv.Metrics.ChartRenders.WithLabelValues("sreusd", "svg")); got != 4 {
		t.Errorf("Expected 4 sreusd svg renders, got %v", got)
	}
}

func TestChartPNG(t *testing.T) {
	srv := newTestServer(t, fileSource())

	rr := do(t, srv, http.MethodGet, "/charts/bad-debt.png?size=medium")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "\x89PNG") {
		t.Error("Expected PNG signature")
	}
}

func TestSnapshotFailure(t *testing.T) {
	srv := newTestServer(t, failingSource{})

	rr := do(t, srv, http.MethodGet, "/charts/sreusd.svg")
	if rr.Code != http.StatusBadGateway {
		t.Errorf("Expected status %d, got %d", http.StatusBadGateway, rr.Code)
	}
	if got := testutil.ToFloat64(srv.Metrics.SnapshotFetchErrors); got != 1 {
		t.Errorf("Expected 1 fetch error, got %v", got)
	}
}

func TestGenerateAndServeReports(t *testing.T) {
	srv := newTestServer(t, fileSource())

	rr := do(t, srv, http.MethodGet, "/reports/latest")
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status %d before any report, got %d", http.StatusNotFound, rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "POST /generate") {
		t.Errorf("Expected initial page, got %d", rr.Code)
	}

	rr = do(t, srv, http.MethodPost, "/generate")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var gen struct {
		ReportURL string `json:"report_url"`
		Charts    int    `json:"charts"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &gen); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if gen.Charts != 3 || !strings.HasSuffix(gen.ReportURL, "/index.html") {
		t.Errorf("Unexpected generate response: %+v", gen)
	}

	rr = do(t, srv, http.MethodGet, gen.ReportURL)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Resupply Dashboard") {
		t.Errorf("Expected stored report page, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected text/html, got %s", ct)
	}

	rr = do(t, srv, http.MethodGet, "/reports/latest")
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}

	rr = do(t, srv, http.MethodGet, "/")
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != gen.ReportURL {
		t.Errorf("Expected redirect to %s, got %d %s", gen.ReportURL, rr.Code, rr.Header().Get("Location"))
	}

	rr = do(t, srv, http.MethodGet, "/reports")
	if !strings.Contains(rr.Body.String(), gen.ReportURL) {
		t.Errorf("Expected report list to contain %s, got %s", gen.ReportURL, rr.Body.String())
	}

	rr = do(t, srv, http.MethodGet, "/files/missing/index.html")
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

type countingSource struct {
	calls int
	inner fetchers.Source
}

func (c *countingSource) Latest(ctx context.Context) (*models.Snapshot, error) {
	c.calls++
	return c.inner.Latest(ctx)
}

func TestGenerateRefreshesCachedSnapshot(t *testing.T) {
	upstream := &countingSource{inner: fileSource()}
	srv := newTestServer(t, fetchers.NewCachedSource(upstream, time.Hour))

	do(t, srv, http.MethodGet, "/charts/sreusd.svg")
	do(t, srv, http.MethodGet, "/charts/bad-debt.svg")
	if upstream.calls != 1 {
		t.Fatalf("Expected chart requests to share one fetch, got %d", upstream.calls)
	}

	rr := do(t, srv, http.MethodPost, "/generate")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if upstream.calls != 2 {
		t.Errorf("Expected generate to refetch the snapshot, got %d fetches", upstream.calls)
	}
}

func TestGenerateErrorDetail(t *testing.T) {
	tests := []struct {
		environment string
		showDetail  bool
	}{
		{"development", true},
		{"production", false},
	}
	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			srv := newTestServer(t, failingSource{})
			srv.Config.Environment = tt.environment

			rr := do(t, srv, http.MethodPost, "/generate")
			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("Expected status %d, got %d", http.StatusInternalServerError, rr.Code)
			}
			if got := strings.Contains(rr.Body.String(), "upstream down"); got != tt.showDetail {
				t.Errorf("Expected error detail shown=%v, got body %s", tt.showDetail, rr.Body.String())
			}
		})
	}
}

func TestGenerateRejectsConcurrentRuns(t *testing.T) {
	srv := newTestServer(t, fileSource())
	srv.generateMutex.Lock()
	defer srv.generateMutex.Unlock()

	rr := do(t, srv, http.MethodPost, "/generate")
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, fileSource())
	do(t, srv, http.MethodGet, "/charts/yearn-loan.svg")

	rr := do(t, srv, http.MethodGet, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `chart_renders_total{chart="yearn-loan",format="svg"} 1`) {
		t.Error("Expected render counter in metrics output")
	}
}

func TestReportLimit(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
	}{
		{"", 10},
		{"5", 5},
		{"0", 10},
		{"abc", 10},
		{"500", 100},
	}
	for _, tt := range tests {
		q := map[string][]string{"limit": {tt.raw}}
		if got := reportLimit(q); got != tt.expected {
			t.Errorf("Expected limit %d for %q, got %d", tt.expected, tt.raw, got)
		}
	}
}
