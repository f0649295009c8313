package charts

import (
	"io"
	"strings"

	"resupplycharts/internal/models"
)

// Chart is one renderable time-series chart. The static drawing is computed
// once; pointer events only change the hover overlay. A Chart is not safe for
// concurrent use; each caller owns its own instance.
type Chart struct {
	opts  Options
	plot  *Plot
	hover HoverState
	base  string
}

// New builds a chart for series. The series is copied and sorted; the caller's
// slice is not modified.
func New(series models.Series, opts Options) *Chart {
	opts = opts.withDefaults()
	return &Chart{
		opts: opts,
		plot: NewPlot(series, LayoutFor(opts.Size)),
	}
}

// Options returns the effective options after defaults
func (c *Chart) Options() Options { return c.opts }

// Plot returns the chart geometry
func (c *Chart) Plot() *Plot { return c.plot }

// Empty reports whether the chart renders the "no data" placeholder
func (c *Chart) Empty() bool { return c.plot.Len() == 0 }

// PointerMove updates the hover state from a pointer column. It does nothing
// when hover is disabled and reports whether a point is hovered afterwards.
func (c *Chart) PointerMove(x float64) bool {
	if !c.opts.EnableHover {
		return false
	}
	return c.hover.Move(c.plot, x)
}

// PointerLeave clears the hover state
func (c *Chart) PointerLeave() {
	c.hover.Leave()
}

// Hovered returns the hovered point, if any
func (c *Chart) Hovered() (HoverPoint, bool) {
	return c.hover.Current()
}

// SVG renders the chart, including the hover overlay when a point is hovered
func (c *Chart) SVG() string {
	if c.Empty() {
		return renderPlaceholder(c.plot.Layout(), c.opts.Size)
	}
	if c.base == "" {
		c.base = renderBase(c.plot, c.opts)
	}

	var b strings.Builder
	b.WriteString(c.base)
	if hp, ok := c.hover.Current(); ok {
		b.WriteString(renderOverlay(c.plot, c.opts, hp))
	}
	b.WriteString("</svg>")
	return b.String()
}

// Render writes the SVG to w
func (c *Chart) Render(w io.Writer) error {
	_, err := io.WriteString(w, c.SVG())
	return err
}

// RenderSVG renders series without any hover state
func RenderSVG(series models.Series, opts Options) string {
	return New(series, opts).SVG()
}
