package charts

import (
	"math"

	"resupplycharts/internal/models"
)

// HoverPoint is the data point nearest the pointer and its pixel position on
// every axis that has data there
type HoverPoint struct {
	Point      models.DataPoint
	Index      int
	X          float64
	Y          float64
	SecondaryY *float64
}

// ResolveHover maps a pointer column to the nearest sample. It snaps to an
// index and never interpolates between samples. The second result is false
// when the pointer is outside the plot's horizontal extent (NaN included) or
// there is no data.
func (p *Plot) ResolveHover(pointerX float64) (HoverPoint, bool) {
	n := len(p.points)
	if n == 0 {
		return HoverPoint{}, false
	}
	l := p.layout
	if math.IsNaN(pointerX) || pointerX < l.LeftPadding || pointerX > l.PlotRight() {
		return HoverPoint{}, false
	}

	idx := int(math.Round((pointerX - l.LeftPadding) / l.PlotWidth() * float64(n-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}

	pt := p.points[idx]
	hp := HoverPoint{
		Point: pt,
		Index: idx,
		X:     p.X(idx),
		Y:     p.Y(AxisPrimary, pt.Value),
	}
	if p.hasSecondary && pt.SecondaryValue != nil {
		sy := p.Y(AxisSecondary, *pt.SecondaryValue)
		hp.SecondaryY = &sy
	}
	return hp, true
}

// HoverState tracks at most one hovered point for a single chart
type HoverState struct {
	current *HoverPoint
}

// Move resolves pointerX against plot and replaces the tracked point. A pointer
// outside the plot clears it. It reports whether a point is now tracked.
func (h *HoverState) Move(plot *Plot, pointerX float64) bool {
	hp, ok := plot.ResolveHover(pointerX)
	if !ok {
		h.current = nil
		return false
	}
	h.current = &hp
	return true
}

// Leave clears the tracked point
func (h *HoverState) Leave() {
	h.current = nil
}

// Current returns the tracked point, if any
func (h *HoverState) Current() (HoverPoint, bool) {
	if h.current == nil {
		return HoverPoint{}, false
	}
	return *h.current, true
}
