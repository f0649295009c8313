package charts

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"resupplycharts/internal/models"
)

// Axis selects which value scale a series is drawn against
type Axis int

const (
	AxisPrimary Axis = iota
	AxisSecondary
)

// String returns the axis name
func (a Axis) String() string {
	if a == AxisSecondary {
		return "secondary"
	}
	return "primary"
}

// LineStyle selects how consecutive points are joined
type LineStyle string

const (
	// LineContinuous joins points with straight segments
	LineContinuous LineStyle = "continuous"
	// LineStep holds the previous value until the next point, drawing a staircase
	LineStep LineStyle = "step"
)

// ParseLineStyle maps a style name to a LineStyle
func ParseLineStyle(s string) (LineStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continuous", "line":
		return LineContinuous, nil
	case "step", "steps", "staircase":
		return LineStep, nil
	default:
		return "", fmt.Errorf("unknown line style %q (want continuous or step)", s)
	}
}

// Command is one path drawing instruction
type Command struct {
	Op byte // 'M' move or 'L' line-to
	X  float64
	Y  float64
}

// Path is an ordered list of drawing commands
type Path []Command

// moves counts the move commands in the path
func (p Path) moves() int {
	n := 0
	for _, c := range p {
		if c.Op == 'M' {
			n++
		}
	}
	return n
}

// String renders the path as SVG path data, e.g. "M 40,190 L 410,190"
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c.Op)
		b.WriteByte(' ')
		b.WriteString(num(c.X))
		b.WriteByte(',')
		b.WriteString(num(c.Y))
	}
	return b.String()
}

// num formats a pixel coordinate with at most two decimals
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// BuildPath sorts series and builds the line for one axis in the given style
// using the layout of size. It is a convenience over NewPlot(...).Path.
func BuildPath(series models.Series, size Size, axis Axis, style LineStyle) Path {
	return NewPlot(series, LayoutFor(size)).Path(axis, style)
}
