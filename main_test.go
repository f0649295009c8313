package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sethvargo/go-envconfig"

	"resupplycharts/internal/config"
	"resupplycharts/internal/server"
	"resupplycharts/internal/storage"
)

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{
		Port:           "8080",
		MockupMode:     true,
		SnapshotFile:   "testdata/snapshot.json",
		DeploymentMode: config.DeploymentLocal,
		Environment:    "test",
	}

	client, err := storage.NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv, err := server.NewServer(cfg, server.NewSource(cfg), client)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("handler returned unexpected body: got %v", rr.Body.String())
	}
}

func TestMockupChartEndpoint(t *testing.T) {
	cfg := &config.Config{
		MockupMode:       true,
		SnapshotFile:     "testdata/snapshot.json",
		DeploymentMode:   config.DeploymentLocal,
		DefaultChartSize: "large",
	}
	client, err := storage.NewLocalClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv, err := server.NewServer(cfg, server.NewSource(cfg), client)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/charts/yearn-loan.svg", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `width="700"`) {
		t.Errorf("Expected large yearn-loan chart, got %s", rr.Body.String())
	}
}

func TestConfigLoad(t *testing.T) {
	lookuper := envconfig.MapLookuper(map[string]string{
		"MOCKUP_MODE":   "true",
		"SNAPSHOT_FILE": "testdata/snapshot.json",
	})

	var cfg config.Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		t.Fatalf("Failed to process config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}
	if cfg.Port != "8981" {
		t.Errorf("Expected default port 8981, got %s", cfg.Port)
	}
}
