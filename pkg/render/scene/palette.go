package scene

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fixed palette. Structure fills and strokes are constants; highlight colors
// arrive from the backend and pass through SafeColor before reaching a sink.
const (
	ColorBase   = "#ecf0f1" // unannotated element fill
	ColorStroke = "#7f8c8d" // element outlines and connectors
	ColorText   = "#2c3e50" // values and labels
	ColorDim    = "#bdc3c7" // eliminated/muted elements
	ColorAccent = "#3498db" // markers (TOP, FRONT, HEAD, ...)
	ColorBand   = "#d6eaf8" // search range band
	ColorWarn   = "#e67e22" // unsupported-type placeholder
)

// namedColors maps the CSS-ish color names the backend occasionally emits to
// palette hex values.
var namedColors = map[string]string{
	"red":    "#e74c3c",
	"green":  "#2ecc71",
	"blue":   "#3498db",
	"yellow": "#f1c40f",
	"orange": "#f39c12",
	"purple": "#9b59b6",
	"gray":   "#95a5a6",
	"grey":   "#95a5a6",
	"white":  "#ffffff",
	"black":  "#000000",
}

// SafeColor validates a backend-supplied color and returns a displayable hex
// value. Named colors map through the palette; hex strings are parsed and
// normalized; anything else falls back. This is what guarantees the output
// contract's "valid display colors or the fixed defaults".
func SafeColor(c, fallback string) string {
	c = strings.TrimSpace(strings.ToLower(c))
	if c == "" {
		return fallback
	}
	if hex, ok := namedColors[c]; ok {
		return hex
	}
	// colorful.Hex scans loosely: "#12345" parses as "#123405" instead of
	// erroring, so odd lengths must be rejected up front.
	if strings.HasPrefix(c, "#") && (len(c) == 4 || len(c) == 7) {
		if parsed, err := colorful.Hex(c); err == nil {
			return parsed.Hex()
		}
	}
	return fallback
}
