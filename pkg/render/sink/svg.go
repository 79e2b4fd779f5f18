package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/algoviz/algoviz/pkg/render/scene"
)

const svgFontFamily = "Menlo, Consolas, monospace"

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	padding    float64
}

// WithBackground sets the canvas background color (default white).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithPadding sets the padding around the composed groups.
func WithPadding(p float64) SVGOption {
	return func(r *svgRenderer) { r.padding = p }
}

// RenderSVG serializes a scene as a standalone SVG document. Element
// coordinates pass through a finiteness guard, so a degenerate scene still
// produces a well-formed document rather than NaN attribute soup.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{background: "#ffffff", padding: 20}
	for _, opt := range opts {
		opt(&r)
	}

	width := safeDim(sc.Width + 2*r.padding)
	height := safeDim(sc.Height + 2*r.padding)
	if sc.Description != "" {
		height += 34
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, height, r.background)

	top := r.padding
	if sc.Description != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="14" font-weight="bold" fill="%s">%s</text>`+"\n",
			r.padding, r.padding+6, svgFontFamily, scene.ColorText, escapeText(sc.Description))
		top += 34
	}

	for _, g := range sc.Groups {
		fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", safeNum(g.OX+r.padding), safeNum(g.OY+top))
		for _, e := range g.Elems {
			renderElement(&buf, e)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderDefs emits the arrowhead marker shared by every Arrow element.
func renderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <marker id="arrowhead" markerWidth="10" markerHeight="8" refX="9" refY="4" orient="auto">
      <polygon points="0 0, 10 4, 0 8" fill="%s"/>
    </marker>
  </defs>
`, scene.ColorStroke)
}

func renderElement(buf *bytes.Buffer, e scene.Element) {
	switch el := e.(type) {
	case scene.Rect:
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"`,
			safeNum(el.X), safeNum(el.Y), safeDim(el.W), safeDim(el.H), safeDim(el.Rx), attrColor(el.Fill))
		if el.Stroke != "" {
			fmt.Fprintf(buf, ` stroke="%s"`, attrColor(el.Stroke))
		}
		buf.WriteString("/>\n")
	case scene.Circle:
		fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s"/>`+"\n",
			safeNum(el.CX), safeNum(el.CY), safeDim(el.R), attrColor(el.Fill), attrColor(el.Stroke))
	case scene.Line:
		dash := ""
		if el.Dashed {
			dash = ` stroke-dasharray="5,4"`
		}
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			safeNum(el.X1), safeNum(el.Y1), safeNum(el.X2), safeNum(el.Y2), attrColor(el.Stroke), lineWidth(el.Width), dash)
	case scene.Arrow:
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" marker-end="url(#arrowhead)"/>`+"\n",
			safeNum(el.X1), safeNum(el.Y1), safeNum(el.X2), safeNum(el.Y2), attrColor(el.Stroke), lineWidth(el.Width))
	case scene.Text:
		anchor := el.Anchor
		if anchor == "" {
			anchor = "start"
		}
		weight := ""
		if el.Bold {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s" text-anchor="%s"%s>%s</text>`+"\n",
			safeNum(el.X), safeNum(el.Y), svgFontFamily, safeDim(el.Size), attrColor(el.Fill), anchor, weight, escapeText(el.Content))
	}
}

// attrColor revalidates colors at the serialization boundary. Renderers
// already pass highlights through scene.SafeColor, but elements can be
// constructed directly too.
func attrColor(c string) string {
	return scene.SafeColor(c, scene.ColorText)
}

func lineWidth(w float64) float64 {
	if !(w > 0) || math.IsInf(w, 1) {
		return 1.5
	}
	return w
}

// safeNum clamps non-finite coordinates to zero.
func safeNum(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// safeDim clamps dimensions to finite non-negative values.
func safeDim(v float64) float64 {
	v = safeNum(v)
	if v < 0 {
		return 0
	}
	return v
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
