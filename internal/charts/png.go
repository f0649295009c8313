package charts

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"resupplycharts/internal/models"
)

// ErrNoData is returned by raster export for an empty series
var ErrNoData = errors.New("no chart data")

// RenderPNG draws series as a PNG image with go-chart. It uses the same scales,
// ticks and index-based x spacing as the SVG renderer.
func RenderPNG(w io.Writer, series models.Series, opts Options) error {
	opts = opts.withDefaults()
	plot := NewPlot(series, LayoutFor(opts.Size))
	if plot.Len() == 0 {
		return ErrNoData
	}

	l := plot.Layout()
	xMax := math.Max(float64(plot.Len()-1), 1)
	primaryColor := colorOrDefault(opts.PrimaryLineColor, DefaultPrimaryLineColor)
	secondaryColor := colorOrDefault(opts.SecondaryLineColor, DefaultSecondaryLineColor)

	graph := chart.Chart{
		Width:  int(l.Width),
		Height: int(l.Height),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    int(l.Padding),
				Left:   int(l.LeftPadding),
				Right:  int(l.RightPadding),
				Bottom: int(l.Padding),
			},
		},
		XAxis: chart.XAxis{
			Style: chart.Style{
				FontSize: l.FontSize,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: indexTicks(plot, xMax),
			ValueFormatter: func(v interface{}) string {
				return ""
			},
		},
		YAxis: rasterYAxis(plot, AxisPrimary, opts.ValueFormatter, opts.ValueLabel, l, opts.ShowGrid),
		Series: []chart.Series{
			rasterSeries(plot, AxisPrimary, opts.LineStyle, opts.ValueLabel, primaryColor, l),
		},
	}

	if plot.HasSecondary() {
		graph.YAxisSecondary = rasterYAxis(plot, AxisSecondary, opts.SecondaryValueFormatter, opts.SecondaryValueLabel, l, false)
		graph.Series = append(graph.Series,
			rasterSeries(plot, AxisSecondary, opts.LineStyle, opts.SecondaryValueLabel, secondaryColor, l))
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render PNG chart: %w", err)
	}
	return nil
}

// indexTicks moves the date ticks from time ratios into index space
func indexTicks(plot *Plot, xMax float64) []chart.Tick {
	dates := plot.DateTicks()
	ticks := make([]chart.Tick, 0, len(dates))
	for _, t := range dates {
		ticks = append(ticks, chart.Tick{Value: t.Position * xMax, Label: t.Label})
	}
	return ticks
}

func rasterYAxis(plot *Plot, axis Axis, format Formatter, name string, l Layout, grid bool) chart.YAxis {
	scale := plot.Scale(axis)
	low, high := scale.Min, scale.NiceMax
	if scale.Range == 0 {
		// keep a flat series on the mid line
		low, high = scale.Min-1, scale.NiceMax+1
	}

	var ticks []chart.Tick
	var gridLines []chart.GridLine
	for _, t := range plot.ValueTicks(axis, format) {
		ticks = append(ticks, chart.Tick{Value: t.Value, Label: t.Label})
		gridLines = append(gridLines, chart.GridLine{Value: t.Value})
	}

	y := chart.YAxis{
		Name: name,
		NameStyle: chart.Style{
			FontSize: axisTitleFontSize,
		},
		Style: chart.Style{
			FontSize: l.FontSize,
		},
		Range: &chart.ContinuousRange{Min: low, Max: high},
		Ticks: ticks,
	}
	if grid {
		y.GridLines = gridLines
		y.GridMajorStyle = chart.Style{
			StrokeColor:     drawing.ColorFromHex(gridColor[1:]),
			StrokeWidth:     1,
			StrokeDashArray: []float64{2, 2},
		}
	}
	return y
}

// rasterSeries lays out the vertices of one axis in index space. Step style
// inserts the corner vertex that holds the previous value.
func rasterSeries(plot *Plot, axis Axis, style LineStyle, name string, color drawing.Color, l Layout) chart.ContinuousSeries {
	var xs, ys []float64
	for i := range plot.Points() {
		v, ok := plot.valueAt(axis, i)
		if !ok {
			continue
		}
		if style == LineStep && len(ys) > 0 {
			xs = append(xs, float64(i))
			ys = append(ys, ys[len(ys)-1])
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}

	s := chart.ContinuousSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: l.StrokeWidth,
		},
		XValues: xs,
		YValues: ys,
	}
	if len(xs) == 1 {
		s.Style.DotColor = color
		s.Style.DotWidth = l.StrokeWidth * 1.5
	}
	if axis == AxisSecondary {
		s.YAxis = chart.YAxisSecondary
	}
	return s
}
