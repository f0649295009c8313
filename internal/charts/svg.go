package charts

import (
	"bytes"
	"fmt"
	"html"
)

// SVG palette
const (
	gridColor      = "#e5e5e5"
	baselineColor  = "#666666"
	crosshairColor = "#64748b"
	tooltipText    = "#475569"
	placeholderInk = "#737373"
	labelInk       = "black"
)

// Tooltip box geometry
const (
	tooltipWidth        = 150
	tooltipHeight       = 40
	tooltipHeightDual   = 56
	tooltipGap          = 10
	tooltipTextOffset   = 85
	tooltipRaise        = 60
	hoverMarkerRadius   = 5
	axisTitleFontSize   = 11
	tooltipDateFontSize = 11
	tooltipFontSize     = 12
)

// svgBuffer accumulates SVG markup
type svgBuffer struct {
	bytes.Buffer
}

func (b *svgBuffer) line(x1, y1, x2, y2 float64, attrs string) {
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`, num(x1), num(y1), num(x2), num(y2), attrs)
}

func (b *svgBuffer) text(x, y float64, fontSize float64, anchor, fill, extra, body string) {
	fmt.Fprintf(b, `<text x="%s" y="%s" font-size="%spx" font-family="monospace" text-anchor="%s" fill="%s"%s>%s</text>`,
		num(x), num(y), num(fontSize), anchor, fill, extra, body)
}

func (b *svgBuffer) circle(cx, cy, r float64, fill, extra string) {
	fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" fill="%s"%s/>`, num(cx), num(cy), num(r), fill, extra)
}

// renderPlaceholder draws the explicit "no data" state at the preset size
func renderPlaceholder(l Layout, size Size) string {
	var b svgBuffer
	fontSize := 14.0
	if size == SizeSmall {
		fontSize = 10
	}
	openSVG(&b, l)
	b.text(l.Width/2, l.Height/2, fontSize, "middle", placeholderInk, "", "No chart data")
	b.WriteString("</svg>")
	return b.String()
}

func openSVG(b *svgBuffer, l Layout) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" style="background: white">`,
		num(l.Width), num(l.Height), num(l.Width), num(l.Height))
}

// renderBase draws every static layer of the chart, leaving the <svg> open so
// the hover overlay can be appended.
func renderBase(p *Plot, o Options) string {
	var b svgBuffer
	l := p.Layout()
	primaryColor := hexColor(colorOrDefault(o.PrimaryLineColor, DefaultPrimaryLineColor))
	secondaryColor := hexColor(colorOrDefault(o.SecondaryLineColor, DefaultSecondaryLineColor))

	openSVG(&b, l)

	valueTicks := p.ValueTicks(AxisPrimary, o.ValueFormatter)
	secondaryTicks := p.ValueTicks(AxisSecondary, o.SecondaryValueFormatter)

	if o.ShowGrid {
		for _, t := range valueTicks {
			y := l.YFor(t.Position)
			b.line(l.LeftPadding, y, l.PlotRight(), y,
				`stroke="`+gridColor+`" stroke-width="1" opacity="0.4" stroke-dasharray="2,2"`)
		}
	}

	for _, t := range valueTicks {
		b.text(l.LeftPadding-10, l.YFor(t.Position)+4, l.FontSize, "end", labelInk, "", html.EscapeString(t.Label))
	}
	for _, t := range secondaryTicks {
		b.text(l.PlotRight()+10, l.YFor(t.Position)+4, l.FontSize, "start", labelInk, "", html.EscapeString(t.Label))
	}

	b.text(l.LeftPadding-10, l.Padding-10, axisTitleFontSize, "end", labelInk, ` font-weight="600"`, html.EscapeString(o.ValueLabel))
	if p.HasSecondary() {
		b.text(l.PlotRight()+10, l.Padding-10, axisTitleFontSize, "start", labelInk, ` font-weight="600"`, html.EscapeString(o.SecondaryValueLabel))
	}

	writeSeries(&b, p, AxisPrimary, o.LineStyle, primaryColor)
	if p.HasSecondary() {
		writeSeries(&b, p, AxisSecondary, o.LineStyle, secondaryColor)
	}

	b.line(l.LeftPadding, l.PlotBottom(), l.PlotRight(), l.PlotBottom(),
		`stroke="`+baselineColor+`" stroke-width="1.5"`)

	for _, t := range p.DateTicks() {
		b.text(l.XFor(t.Position), l.PlotBottom()+l.DateOffset, l.FontSize, "middle", labelInk, "", html.EscapeString(t.Label))
	}

	return b.String()
}

// writeSeries draws one axis line. A lone point has no segment to stroke, so
// it is drawn as a dot.
func writeSeries(b *svgBuffer, p *Plot, axis Axis, style LineStyle, color string) {
	path := p.Path(axis, style)
	if len(path) == 0 {
		return
	}
	l := p.Layout()
	fmt.Fprintf(b, `<path d="%s" stroke="%s" stroke-width="%s" fill="none" stroke-linecap="round" stroke-linejoin="round"/>`,
		path.String(), color, num(l.StrokeWidth))
	if len(path) == 1 {
		b.circle(path[0].X, path[0].Y, l.StrokeWidth*1.5, color, "")
	}
}

// renderOverlay draws the crosshair, markers and tooltip for the hovered point
func renderOverlay(p *Plot, o Options, hp HoverPoint) string {
	var b svgBuffer
	l := p.Layout()
	primaryColor := hexColor(colorOrDefault(o.PrimaryLineColor, DefaultPrimaryLineColor))
	secondaryColor := hexColor(colorOrDefault(o.SecondaryLineColor, DefaultSecondaryLineColor))

	b.WriteString("<g>")
	b.line(hp.X, l.Padding, hp.X, l.PlotBottom(),
		`stroke="`+crosshairColor+`" stroke-width="1" stroke-dasharray="4,4" opacity="0.6"`)
	b.circle(hp.X, hp.Y, hoverMarkerRadius, primaryColor, ` stroke="white" stroke-width="2"`)
	if hp.SecondaryY != nil {
		b.circle(hp.X, *hp.SecondaryY, hoverMarkerRadius, secondaryColor, ` stroke="white" stroke-width="2"`)
	}

	// Past the midpoint the box moves to the left of the cursor
	boxX, textX := hp.X+tooltipGap, hp.X+tooltipTextOffset
	if hp.X > l.Width/2 {
		boxX, textX = hp.X-tooltipWidth-tooltipGap, hp.X-tooltipTextOffset
	}
	boxHeight := float64(tooltipHeight)
	if p.HasSecondary() {
		boxHeight = tooltipHeightDual
	}
	fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%d" height="%s" fill="white" stroke="black" stroke-width="1.5" rx="4"/>`,
		num(boxX), num(hp.Y-tooltipRaise), tooltipWidth, num(boxHeight))

	b.text(textX, hp.Y-40, tooltipDateFontSize, "middle", tooltipText, "", tooltipDate(hp.Point.Timestamp))
	b.text(textX, hp.Y-24, tooltipFontSize, "middle", primaryColor, "",
		`<tspan font-weight="bold">`+html.EscapeString(o.ValueLabel)+`:</tspan> `+html.EscapeString(o.ValueFormatter(hp.Point.Value)))
	if hp.Point.SecondaryValue != nil {
		b.text(textX, hp.Y-8, tooltipFontSize, "middle", secondaryColor, "",
			`<tspan font-weight="bold">`+html.EscapeString(o.SecondaryValueLabel)+`:</tspan> `+html.EscapeString(o.SecondaryValueFormatter(*hp.Point.SecondaryValue)))
	}
	b.WriteString("</g>")
	return b.String()
}
