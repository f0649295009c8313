package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"

	"resupplycharts/internal/charts"
	"resupplycharts/internal/config"
	"resupplycharts/internal/dashboard"
	"resupplycharts/internal/storage"
)

// chartInfo is one catalog entry in the /charts listing
type chartInfo struct {
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	DataPath  string   `json:"data_path"`
	Size      string   `json:"size"`
	LineStyle string   `json:"line_style"`
	Hover     bool     `json:"hover"`
	Grid      bool     `json:"grid"`
	Secondary bool     `json:"secondary"`
	Links     []string `json:"links"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error":  msg,
		"status": status,
	})
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"checks": map[string]string{
			"storage": lo.Ternary(s.Storage != nil, "ok", "disabled"),
			"charts":  fmt.Sprintf("%d", len(s.Catalog.Names())),
		},
	})
}

// HandleListCharts lists the chart catalog
func (s *Server) HandleListCharts(w http.ResponseWriter, r *http.Request) {
	infos := lo.Map(s.Catalog.Specs(), func(spec dashboard.ChartSpec, _ int) chartInfo {
		style := spec.Options.LineStyle
		if style == "" {
			style = charts.LineContinuous
		}
		return chartInfo{
			Name:      spec.Name,
			Title:     spec.Title,
			DataPath:  spec.DataPath,
			Size:      string(spec.Options.Size),
			LineStyle: string(style),
			Hover:     spec.Options.EnableHover,
			Grid:      spec.Options.ShowGrid,
			Secondary: spec.Mapping.Secondary != "",
			Links:     []string{"/charts/" + spec.Name + ".svg", "/charts/" + spec.Name + ".png"},
		}
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"charts": infos,
		"count":  len(infos),
	})
}

// lookupChart resolves the {name} route variable, writing the error response
// when it fails
func (s *Server) lookupChart(w http.ResponseWriter, r *http.Request) (dashboard.ChartSpec, charts.Options, bool) {
	spec, err := s.Catalog.Lookup(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return spec, charts.Options{}, false
	}
	fallback, err := charts.ParseSize(s.Config.DefaultChartSize)
	if err != nil {
		fallback = charts.SizeLarge
	}
	opts, err := chartOptions(spec.Options, r.URL.Query(), fallback)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return spec, opts, false
	}
	return spec, opts, true
}

// HandleChartSVG renders one chart as SVG. With hover enabled, ?pointer=x
// resolves the hovered point and includes its overlay.
func (s *Server) HandleChartSVG(w http.ResponseWriter, r *http.Request) {
	spec, opts, ok := s.lookupChart(w, r)
	if !ok {
		return
	}
	x, hasPointer, err := pointerX(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.Source.Latest(r.Context())
	if err != nil {
		s.log.Error("Failed to fetch snapshot", err, map[string]interface{}{"chart": spec.Name})
		writeError(w, http.StatusBadGateway, "snapshot unavailable")
		return
	}

	timer := prometheus.NewTimer(s.Metrics.ChartRenderDuration.WithLabelValues("svg"))
	chart := charts.New(spec.Series(snap), opts)
	if hasPointer {
		chart.PointerMove(x)
	}
	svg := chart.SVG()
	timer.ObserveDuration()
	s.Metrics.ChartRenders.WithLabelValues(spec.Name, "svg").Inc()

	w.Header().Set("Content-Type", storage.GetContentType(".svg"))
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(svg))
}

// HandleChartPNG renders one chart as PNG
func (s *Server) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	spec, opts, ok := s.lookupChart(w, r)
	if !ok {
		return
	}

	snap, err := s.Source.Latest(r.Context())
	if err != nil {
		s.log.Error("Failed to fetch snapshot", err, map[string]interface{}{"chart": spec.Name})
		writeError(w, http.StatusBadGateway, "snapshot unavailable")
		return
	}

	timer := prometheus.NewTimer(s.Metrics.ChartRenderDuration.WithLabelValues("png"))
	var buf bytes.Buffer
	err = charts.RenderPNG(&buf, spec.Series(snap), opts)
	timer.ObserveDuration()
	switch {
	case errors.Is(err, charts.ErrNoData):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.log.Error("Failed to render PNG", err, map[string]interface{}{"chart": spec.Name})
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	s.Metrics.ChartRenders.WithLabelValues(spec.Name, "png").Inc()

	w.Header().Set("Content-Type", storage.GetContentType(".png"))
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

// HandleGenerate builds and stores a dashboard report. Only one generation
// runs at a time; concurrent requests get 409.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if !s.generateMutex.TryLock() {
		s.log.Warn("Report generation already in progress, rejecting new request")
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":  "Report generation already in progress",
			"status": "conflict",
		})
		return
	}
	defer s.generateMutex.Unlock()

	// Reports always render a fresh snapshot
	if s.invalidate != nil {
		s.invalidate()
	}

	start := time.Now()
	report, index, err := s.Reports.Run(r.Context())
	if err != nil {
		s.log.Error("Report generation failed", err)
		msg := "report generation failed"
		if !s.Config.IsProduction() {
			msg = fmt.Sprintf("report generation failed: %v", err)
		}
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	s.Metrics.ReportsGenerated.Inc()

	duration := time.Since(start)
	s.log.Info("Report generation completed", map[string]interface{}{
		"index":       index,
		"duration_ms": duration.Milliseconds(),
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"report_url":  "/files/" + index,
		"charts":      len(report.Charts),
		"timestamp":   report.GeneratedAt.Format(time.RFC3339),
		"duration_ms": duration.Milliseconds(),
	})
}

// HandleListReports lists recent reports, newest first
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	list, err := storage.ListReports(r.Context(), s.Storage, reportLimit(r.URL.Query()))
	if err != nil {
		s.log.Error("Failed to list reports", err)
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports": lo.Map(list, func(p string, _ int) string { return "/files/" + p }),
		"count":   len(list),
	})
}

// HandleLatestReport serves the newest stored report page
func (s *Server) HandleLatestReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	index, err := storage.LatestReport(ctx, s.Storage)
	if err != nil {
		writeError(w, http.StatusNotFound, "no reports available")
		return
	}
	s.serveStoredFile(w, r, index)
}

// HandleFileProxy serves any stored report file
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	s.serveStoredFile(w, r, mux.Vars(r)["path"])
}

func (s *Server) serveStoredFile(w http.ResponseWriter, r *http.Request, p string) {
	data, err := s.Storage.GetFile(r.Context(), p)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "file not found")
		return
	case err != nil:
		s.log.Error("Failed to get file", err, map[string]interface{}{"path": p})
		writeError(w, http.StatusBadRequest, "invalid file path")
		return
	}
	w.Header().Set("Content-Type", storage.GetContentType(p))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// HandleRoot redirects to the latest report, or shows the endpoint list when
// none has been generated yet
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	index, err := storage.LatestReport(r.Context(), s.Storage)
	if err == nil {
		http.Redirect(w, r, "/files/"+index, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(".html"))
	fmt.Fprint(w, initialPage)
}

const initialPage = `<!DOCTYPE html>
<html>
<head><title>Resupply Charts</title></head>
<body style="font-family: monospace; margin: 40px">
<h1>Resupply Charts</h1>
<p>No dashboard reports have been generated yet. POST /generate to build one.</p>
<ul>
<li>GET /health</li>
<li>GET /metrics</li>
<li>GET /charts</li>
<li>GET /charts/{name}.svg?size=&amp;style=&amp;grid=&amp;hover=&amp;pointer=</li>
<li>GET /charts/{name}.png?size=</li>
<li>POST /generate</li>
<li>GET /reports</li>
<li>GET /reports/latest</li>
</ul>
</body>
</html>`
