package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"resupplycharts/internal/charts"
	"resupplycharts/internal/config"
	"resupplycharts/internal/dashboard"
	"resupplycharts/internal/fetchers"
	"resupplycharts/internal/logger"
	"resupplycharts/internal/storage"
)

// ReportTitle heads every generated page
const ReportTitle = "Resupply Dashboard"

// Report is a generated dashboard: the page and every chart artifact, keyed by
// file name relative to FolderPath
type Report struct {
	FolderPath  string
	GeneratedAt time.Time
	Files       map[string][]byte
	Charts      []ChartSection
}

// Generator builds reports from a snapshot source and a chart catalog
type Generator struct {
	source  fetchers.Source
	catalog *dashboard.Catalog
	builder *HTMLBuilder
	now     func() time.Time
	log     *logger.Logger
}

// NewGenerator creates a report generator
func NewGenerator(source fetchers.Source, catalog *dashboard.Catalog) (*Generator, error) {
	builder, err := NewHTMLBuilder()
	if err != nil {
		return nil, err
	}
	return &Generator{
		source:  source,
		catalog: catalog,
		builder: builder,
		now:     time.Now,
		log:     logger.Component("reports"),
	}, nil
}

// Generate fetches one snapshot and renders every catalog chart. Charts with
// no data still get their placeholder SVG but no PNG.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	snap, err := g.source.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	generatedAt := g.now().UTC()
	report := &Report{
		FolderPath:  storage.GenerateReportFolderPath(generatedAt),
		GeneratedAt: generatedAt,
		Files:       make(map[string][]byte),
	}

	for _, spec := range g.catalog.Specs() {
		series := spec.Series(snap)
		log := g.log.With(logger.Fields{"chart": spec.Name, "points": len(series)})

		svg := charts.RenderSVG(series, spec.Options)
		section := ChartSection{
			Name:    spec.Name,
			Title:   spec.Title,
			SVG:     template.HTML(svg),
			Metrics: spec.Summary(series),
			SVGFile: spec.Name + ".svg",
			Points:  len(series),
		}
		latest, _ := series.Latest()
		section.LatestAt = charts.FormatTimestamp(latest.Timestamp)
		report.Files[section.SVGFile] = []byte(svg)

		var png bytes.Buffer
		switch err := charts.RenderPNG(&png, series, spec.Options); {
		case err == nil:
			section.PNGFile = spec.Name + ".png"
			report.Files[section.PNGFile] = png.Bytes()
		case errors.Is(err, charts.ErrNoData):
			log.Warn("chart has no data")
		default:
			return nil, fmt.Errorf("failed to render %s: %w", spec.Name, err)
		}

		if spec.Caption != "" {
			caption, err := g.builder.ConvertMarkdownToHTML(spec.Caption)
			if err != nil {
				return nil, fmt.Errorf("failed to render caption for %s: %w", spec.Name, err)
			}
			section.Caption = caption
		}

		report.Charts = append(report.Charts, section)
		log.Debug("chart rendered")
	}

	page, err := g.builder.BuildPage(PageData{
		Title:       ReportTitle,
		Date:        charts.FormatDate(generatedAt.Unix()),
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05 UTC"),
		LastUpdated: lastUpdated(snap.UpdatedAt, snap.LastUpdate),
		Version:     config.GetVersion(),
		Charts:      report.Charts,
	})
	if err != nil {
		return nil, err
	}
	report.Files[storage.ReportIndex] = page

	g.log.Info("report generated", map[string]interface{}{
		"folder": report.FolderPath,
		"charts": len(report.Charts),
		"files":  len(report.Files),
	})
	return report, nil
}

// lastUpdated renders the footer time, falling back to the published value
func lastUpdated(at *time.Time, raw string) string {
	if at != nil {
		return at.UTC().Format("2006-01-02 15:04 UTC")
	}
	if raw != "" {
		return raw
	}
	return "unknown"
}
