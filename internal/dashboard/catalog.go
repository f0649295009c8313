package dashboard

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"resupplycharts/internal/charts"
	"resupplycharts/internal/fetchers"
	"resupplycharts/internal/models"
)

// ErrUnknownChart is returned when a chart name is not in the catalog
var ErrUnknownChart = errors.New("unknown chart")

// Metric is a headline figure shown next to a chart, taken from the latest point
type Metric struct {
	Label  string
	Axis   charts.Axis
	Format charts.Formatter
}

// ChartSpec describes one named chart: where its records live in the
// snapshot, how they map to a series and how the chart is drawn
type ChartSpec struct {
	Name     string
	Title    string
	DataPath string
	Mapping  fetchers.FieldMapping
	Options  charts.Options
	Caption  string // Markdown
	Metrics  []Metric
}

// Series extracts and normalizes the chart's records from snap
func (s ChartSpec) Series(snap *models.Snapshot) models.Series {
	return fetchers.NormalizeSeries(snap.Records(s.DataPath), s.Mapping)
}

// MetricValue is a formatted headline figure
type MetricValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary formats the chart's metrics from the latest point of series. Metrics
// on an axis the latest point does not define read "-".
func (s ChartSpec) Summary(series models.Series) []MetricValue {
	latest, ok := series.Latest()
	return lo.Map(s.Metrics, func(m Metric, _ int) MetricValue {
		mv := MetricValue{Label: m.Label, Value: "-"}
		if !ok {
			return mv
		}
		switch {
		case m.Axis == charts.AxisPrimary:
			mv.Value = m.Format(latest.Value)
		case latest.SecondaryValue != nil:
			mv.Value = m.Format(*latest.SecondaryValue)
		}
		return mv
	})
}

// Catalog is an ordered set of chart specs
type Catalog struct {
	specs []ChartSpec
}

// NewCatalog builds a catalog, rejecting empty and duplicate names
func NewCatalog(specs ...ChartSpec) (*Catalog, error) {
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("chart spec with data path %q has no name", s.DataPath)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate chart name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return &Catalog{specs: specs}, nil
}

// Lookup finds a chart by name
func (c *Catalog) Lookup(name string) (ChartSpec, error) {
	spec, ok := lo.Find(c.specs, func(s ChartSpec) bool { return s.Name == name })
	if !ok {
		return ChartSpec{}, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	return spec, nil
}

// Names lists chart names in catalog order
func (c *Catalog) Names() []string {
	return lo.Map(c.specs, func(s ChartSpec, _ int) string { return s.Name })
}

// Specs returns every chart spec in catalog order
func (c *Catalog) Specs() []ChartSpec {
	return append([]ChartSpec(nil), c.specs...)
}
