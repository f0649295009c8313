package charts

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// knownColors maps the CSS names used by the dashboard to their hex codes
var knownColors = map[string]string{
	"black":  "000000",
	"white":  "ffffff",
	"green":  "008000",
	"blue":   "0000ff",
	"red":    "ff0000",
	"gray":   "808080",
	"grey":   "808080",
	"orange": "ffa500",
	"purple": "800080",
	"teal":   "008080",
	"navy":   "000080",
	"slate":  "64748b",
}

// ParseColor resolves a color token ("#3182ce", "#fff" or a known name)
func ParseColor(token string) (drawing.Color, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if hex, ok := knownColors[t]; ok {
		return drawing.ColorFromHex(hex), nil
	}

	hex := strings.TrimPrefix(t, "#")
	if hex == t || (len(hex) != 3 && len(hex) != 6) {
		return drawing.Color{}, fmt.Errorf("invalid color token %q", token)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return drawing.Color{}, fmt.Errorf("invalid color token %q", token)
		}
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return drawing.ColorFromHex(hex), nil
}

// colorOrDefault resolves token, falling back to def when it is invalid
func colorOrDefault(token, def string) drawing.Color {
	if c, err := ParseColor(token); err == nil {
		return c
	}
	c, _ := ParseColor(def)
	return c
}

// hexColor renders a color as lowercase #rrggbb for SVG attributes
func hexColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
