package charts

import (
	"math"

	"resupplycharts/internal/models"
)

// Plot is the computed geometry of one series inside one layout: the sorted
// points and the scale of each active axis. It is immutable once built.
type Plot struct {
	layout       Layout
	points       models.Series
	primary      Scale
	secondary    Scale
	hasSecondary bool
}

// NewPlot sorts a copy of series and derives the axis scales
func NewPlot(series models.Series, layout Layout) *Plot {
	sorted := series.Sorted()
	p := &Plot{
		layout:       layout,
		points:       sorted,
		primary:      ComputeScale(sorted.Values()),
		hasSecondary: sorted.HasSecondary(),
	}
	if p.hasSecondary {
		p.secondary = ComputeScale(sorted.SecondaryValues())
	}
	return p
}

// Layout returns the pixel geometry the plot was built for
func (p *Plot) Layout() Layout { return p.layout }

// Points returns the sorted series
func (p *Plot) Points() models.Series { return p.points }

// Len is the number of points
func (p *Plot) Len() int { return len(p.points) }

// HasSecondary reports whether a secondary axis is drawn
func (p *Plot) HasSecondary() bool { return p.hasSecondary }

// Scale returns the domain of axis
func (p *Plot) Scale(axis Axis) Scale {
	if axis == AxisSecondary {
		return p.secondary
	}
	return p.primary
}

// X is the pixel column of the point at index i. Spacing is by index, not by
// time: adjacent samples are always the same distance apart.
func (p *Plot) X(i int) float64 {
	denom := math.Max(float64(len(p.points)-1), 1)
	return p.layout.XFor(float64(i) / denom)
}

// Y is the pixel row of value v on axis
func (p *Plot) Y(axis Axis, v float64) float64 {
	return p.layout.YFor(p.Scale(axis).Normalize(v))
}

// valueAt returns the value of point i on axis, false if that axis is undefined there
func (p *Plot) valueAt(axis Axis, i int) (float64, bool) {
	pt := p.points[i]
	if axis == AxisSecondary {
		if pt.SecondaryValue == nil {
			return 0, false
		}
		return *pt.SecondaryValue, true
	}
	return pt.Value, true
}

// Path builds the line for axis. Points without a value on the axis are
// skipped; the staircase then holds the last drawn value.
func (p *Plot) Path(axis Axis, style LineStyle) Path {
	if axis == AxisSecondary && !p.hasSecondary {
		return nil
	}

	var path Path
	var prevY float64
	for i := range p.points {
		v, ok := p.valueAt(axis, i)
		if !ok {
			continue
		}
		x, y := p.X(i), p.Y(axis, v)
		switch {
		case len(path) == 0:
			path = append(path, Command{Op: 'M', X: x, Y: y})
		case style == LineStep:
			path = append(path, Command{Op: 'L', X: x, Y: prevY}, Command{Op: 'L', X: x, Y: y})
		default:
			path = append(path, Command{Op: 'L', X: x, Y: y})
		}
		prevY = y
	}
	return path
}

// ValueTicks returns the ticks of axis, labelled by format
func (p *Plot) ValueTicks(axis Axis, format Formatter) []Tick {
	if axis == AxisSecondary && !p.hasSecondary {
		return nil
	}
	return ValueTicks(p.Scale(axis), format)
}

// DateTicks returns the x axis ticks of the plot
func (p *Plot) DateTicks() []Tick {
	return DateTicks(p.points)
}
