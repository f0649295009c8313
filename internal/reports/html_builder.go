package reports

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"resupplycharts/internal/dashboard"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

// ChartSection is one chart as it appears on the report page
type ChartSection struct {
	Name    string
	Title   string
	SVG     template.HTML
	Caption template.HTML
	Metrics []dashboard.MetricValue
	SVGFile string
	PNGFile  string // Empty when the chart had no data to rasterize
	Points   int
	LatestAt string // "MM/DD HH:MM" UTC of the newest sample, "-" without samples
}

// PageData is the data handed to the report template
type PageData struct {
	Title       string
	Date        string
	GeneratedAt string
	LastUpdated string
	Version     string
	Charts      []ChartSection
}

// HTMLBuilder renders report pages and markdown captions
type HTMLBuilder struct {
	markdown goldmark.Markdown
	page     *template.Template
}

// NewHTMLBuilder parses the embedded page template
func NewHTMLBuilder() (*HTMLBuilder, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &HTMLBuilder{markdown: md, page: page}, nil
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark. Raw HTML in
// the source is omitted.
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// BuildPage executes the page template
func (h *HTMLBuilder) BuildPage(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
