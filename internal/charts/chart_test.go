package charts

import (
	"bytes"
	"strings"
	"testing"

	"resupplycharts/internal/models"
)

func TestChartPlaceholder(t *testing.T) {
	tests := []struct {
		size     Size
		width    string
		fontSize string
	}{
		{SizeSmall, `width="240"`, `font-size="10px"`},
		{SizeMedium, `width="450"`, `font-size="14px"`},
		{SizeLarge, `width="700"`, `font-size="14px"`},
	}

	for _, tt := range tests {
		svg := RenderSVG(nil, Options{Size: tt.size})
		if !strings.Contains(svg, "No chart data") {
			t.Errorf("%s: expected placeholder text", tt.size)
		}
		if !strings.Contains(svg, tt.width) || !strings.Contains(svg, tt.fontSize) {
			t.Errorf("%s: unexpected placeholder geometry: %s", tt.size, svg)
		}
		if strings.Contains(svg, "<path") {
			t.Errorf("%s: expected no series on the placeholder", tt.size)
		}
	}
}

func TestChartSinglePointDot(t *testing.T) {
	svg := RenderSVG(models.Series{{Timestamp: 1700000000, Value: 4}}, Options{Size: SizeMedium})

	want := `<circle cx="40" cy="70" r="3" fill="#000000"/>`
	if !strings.Contains(svg, want) {
		t.Errorf("Expected single point dot %s in %s", want, svg)
	}
}

func TestChartRenderIdempotent(t *testing.T) {
	series := dailySeries(testStart, 31)
	opts := Options{Size: SizeLarge, ShowGrid: true, EnableHover: true}

	first := RenderSVG(series, opts)
	second := RenderSVG(series, opts)
	if first != second {
		t.Fatal("Expected identical output from identical input")
	}

	c := New(series, opts)
	base := c.SVG()
	if base != first {
		t.Error("Expected a fresh chart to match RenderSVG")
	}
	if !c.PointerMove(300) {
		t.Fatal("Expected a hovered point")
	}
	if c.SVG() == base {
		t.Error("Expected the hover overlay to change the output")
	}
	c.PointerLeave()
	if c.SVG() != base {
		t.Error("Expected leaving the chart to restore the base drawing")
	}
}

func TestChartHoverDisabled(t *testing.T) {
	c := New(dailySeries(testStart, 5), Options{Size: SizeMedium})
	if c.PointerMove(200) {
		t.Error("Expected pointer moves to be ignored without hover")
	}
	if _, ok := c.Hovered(); ok {
		t.Error("Expected no hovered point")
	}
	if strings.Contains(c.SVG(), "<g>") {
		t.Error("Expected no overlay without hover")
	}
}

func TestChartTooltipFlip(t *testing.T) {
	c := New(dailySeries(testStart, 5), Options{Size: SizeMedium, EnableHover: true})

	c.PointerMove(40)
	if svg := c.SVG(); !strings.Contains(svg, `<rect x="50"`) {
		t.Errorf("Expected the tooltip right of the cursor: %s", svg)
	}

	c.PointerMove(410)
	if svg := c.SVG(); !strings.Contains(svg, `<rect x="250"`) {
		t.Errorf("Expected the tooltip left of the cursor: %s", svg)
	}
}

func TestChartTooltipContent(t *testing.T) {
	series := models.Series{
		{Timestamp: testStart.Unix(), Value: 4.25, SecondaryValue: models.Float(12_500_000)},
		{Timestamp: testStart.AddDate(0, 0, 1).Unix(), Value: 5},
	}
	c := New(series, Options{
		Size:                    SizeMedium,
		EnableHover:             true,
		ValueLabel:              "APR",
		SecondaryValueLabel:     "TVL",
		ValueFormatter:          Percent(2),
		SecondaryValueFormatter: Millions(1),
	})

	c.PointerMove(40)
	svg := c.SVG()
	for _, want := range []string{
		">1/1/2023</text>",
		`<tspan font-weight="bold">APR:</tspan> 4.25%`,
		`<tspan font-weight="bold">TVL:</tspan> 12.5M`,
		`height="56"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("Expected %q in tooltip", want)
		}
	}

	c.PointerMove(410)
	if strings.Contains(c.SVG(), "TVL:</tspan>") {
		t.Error("Expected no secondary tooltip row where the value is missing")
	}
}

func TestChartLayerOrder(t *testing.T) {
	series := dailySeries(testStart, 10)
	for i := range series {
		series[i].SecondaryValue = models.Float(float64(100 + i*10))
	}
	c := New(series, Options{
		Size:               SizeLarge,
		ShowGrid:           true,
		EnableHover:        true,
		PrimaryLineColor:   "green",
		SecondaryLineColor: "navy",
	})
	if !c.PointerMove(300) {
		t.Fatal("Expected a hovered point")
	}
	svg := c.SVG()

	layers := []struct {
		name   string
		marker string
	}{
		{"grid", `stroke-dasharray="2,2"`},
		{"left tick labels", `text-anchor="end"`},
		{"right tick labels", `text-anchor="start"`},
		{"axis titles", `font-weight="600"`},
		{"primary line", `<path d="M`},
		{"secondary line", `<path d="M`},
		{"baseline", `stroke="` + baselineColor + `"`},
		{"date labels", `text-anchor="middle"`},
		{"hover overlay", "<g>"},
		{"tooltip", "<rect"},
	}

	pos := 0
	for _, layer := range layers {
		idx := strings.Index(svg[pos:], layer.marker)
		if idx < 0 {
			t.Fatalf("Expected %s after offset %d", layer.name, pos)
		}
		pos += idx + len(layer.marker)
	}

	primary := strings.Index(svg, `stroke="#008000"`)
	secondary := strings.Index(svg, `stroke="#000080"`)
	if primary < 0 || secondary < 0 || primary > secondary {
		t.Errorf("Expected the primary line before the secondary line, got %d and %d", primary, secondary)
	}
	if last, first := strings.LastIndex(svg, `stroke-dasharray="2,2"`), strings.Index(svg, "<text"); last > first {
		t.Errorf("Expected every grid line before the first label, got %d and %d", last, first)
	}
	if last, baseline := strings.LastIndex(svg, "<path"), strings.Index(svg, `stroke="`+baselineColor+`"`); last > baseline {
		t.Errorf("Expected both series before the baseline, got %d and %d", last, baseline)
	}
	if overlay := strings.Index(svg, "<g>"); overlay < strings.LastIndex(svg, `text-anchor="middle" fill="black"`) {
		t.Error("Expected the hover overlay after the date labels")
	}
}

func TestChartGridAndLabels(t *testing.T) {
	series := dailySeries(testStart, 31)

	withGrid := RenderSVG(series, Options{Size: SizeLarge, ShowGrid: true})
	if !strings.Contains(withGrid, `stroke-dasharray="2,2"`) {
		t.Error("Expected grid lines")
	}
	without := RenderSVG(series, Options{Size: SizeLarge})
	if strings.Contains(without, `stroke-dasharray="2,2"`) {
		t.Error("Expected no grid lines")
	}

	for _, label := range []string{">1/1</text>", ">1/16</text>", ">1/31</text>", ">Value</text>"} {
		if !strings.Contains(without, label) {
			t.Errorf("Expected label %q", label)
		}
	}
	if strings.Contains(without, "Secondary Value") {
		t.Error("Expected no secondary axis title without secondary data")
	}
}

func TestChartEscapesText(t *testing.T) {
	svg := RenderSVG(dailySeries(testStart, 3), Options{ValueLabel: "<APR & more>"})
	if !strings.Contains(svg, "&lt;APR &amp; more&gt;") {
		t.Error("Expected the axis title to be escaped")
	}
}

func TestChartLineColors(t *testing.T) {
	series := models.Series{
		{Timestamp: 1, Value: 1, SecondaryValue: models.Float(2)},
		{Timestamp: 2, Value: 3, SecondaryValue: models.Float(4)},
	}
	svg := RenderSVG(series, Options{PrimaryLineColor: "green", SecondaryLineColor: "not-a-color"})

	if !strings.Contains(svg, `stroke="#008000"`) {
		t.Error("Expected the primary line in green")
	}
	if !strings.Contains(svg, `stroke="#3182ce"`) {
		t.Error("Expected an invalid secondary color to fall back to the default")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("Expected two series paths, got %d", strings.Count(svg, "<path"))
	}
}

func TestChartRenderWriter(t *testing.T) {
	c := New(dailySeries(testStart, 3), Options{})
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.String() != c.SVG() {
		t.Error("Expected Render to write the SVG")
	}
	if !strings.HasPrefix(buf.String(), "<svg") || !strings.HasSuffix(buf.String(), "</svg>") {
		t.Error("Expected a complete SVG document")
	}
}

func TestChartOptionsDefaults(t *testing.T) {
	o := New(nil, Options{Size: "huge", LineStyle: "zigzag"}).Options()
	if o.Size != SizeLarge {
		t.Errorf("Expected size to fall back to large, got %q", o.Size)
	}
	if o.LineStyle != LineContinuous {
		t.Errorf("Expected continuous line style, got %q", o.LineStyle)
	}
	if o.ValueLabel != DefaultValueLabel || o.SecondaryValueLabel != DefaultSecondaryValueLabel {
		t.Errorf("Unexpected default labels %q, %q", o.ValueLabel, o.SecondaryValueLabel)
	}
	if o.ValueFormatter(1) != "1.00" {
		t.Errorf("Expected Fixed(2) default formatter, got %q", o.ValueFormatter(1))
	}
}
