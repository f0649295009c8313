package charts

import (
	"fmt"
	"strings"
)

// Size selects one of the fixed chart presets
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Layout holds the pixel geometry of a preset. Padding, font size and stroke
// width scale together; callers pick a Size rather than raw dimensions.
type Layout struct {
	Width        float64
	Height       float64
	Padding      float64 // Top and bottom
	LeftPadding  float64
	RightPadding float64
	FontSize     float64 // Tick label font size in px
	StrokeWidth  float64 // Series line width
	DateOffset   float64 // Distance from the baseline to date labels
}

var layouts = map[Size]Layout{
	SizeSmall:  {Width: 240, Height: 120, Padding: 20, LeftPadding: 25, RightPadding: 25, FontSize: 8, StrokeWidth: 1.5, DateOffset: 10},
	SizeMedium: {Width: 450, Height: 260, Padding: 30, LeftPadding: 40, RightPadding: 40, FontSize: 10, StrokeWidth: 2, DateOffset: 15},
	SizeLarge:  {Width: 700, Height: 300, Padding: 30, LeftPadding: 50, RightPadding: 60, FontSize: 12, StrokeWidth: 2, DateOffset: 15},
}

// ParseSize maps a preset name to a Size. "mini" and "inline" are accepted for small.
func ParseSize(s string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small", "mini", "inline":
		return SizeSmall, nil
	case "medium":
		return SizeMedium, nil
	case "large", "full":
		return SizeLarge, nil
	default:
		return "", fmt.Errorf("unknown chart size %q (want small, medium or large)", s)
	}
}

// LayoutFor returns the layout of a preset, falling back to large for unknown sizes
func LayoutFor(size Size) Layout {
	if l, ok := layouts[size]; ok {
		return l
	}
	return layouts[SizeLarge]
}

// PlotWidth is the horizontal extent available to series
func (l Layout) PlotWidth() float64 {
	return l.Width - l.LeftPadding - l.RightPadding
}

// PlotHeight is the vertical extent available to series
func (l Layout) PlotHeight() float64 {
	return l.Height - 2*l.Padding
}

// PlotBottom is the pixel row of the x axis baseline
func (l Layout) PlotBottom() float64 {
	return l.Height - l.Padding
}

// PlotRight is the rightmost pixel column of the plot area
func (l Layout) PlotRight() float64 {
	return l.Width - l.RightPadding
}

// YFor maps a normalized ratio in [0,1] to a pixel row
func (l Layout) YFor(ratio float64) float64 {
	return l.PlotBottom() - ratio*l.PlotHeight()
}

// XFor maps a normalized ratio in [0,1] to a pixel column
func (l Layout) XFor(ratio float64) float64 {
	return l.LeftPadding + ratio*l.PlotWidth()
}
