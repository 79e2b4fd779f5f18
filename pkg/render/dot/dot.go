// Package dot exports graph and tree snapshots as Graphviz DOT and renders
// them through the Graphviz layout engine. This is the alternative export
// path for structures where Graphviz's own layout beats the backend's node
// coordinates (dense graphs, machine-generated sessions without positions).
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/algoviz/algoviz/pkg/annotate"
	"github.com/algoviz/algoviz/pkg/frame"
	"github.com/algoviz/algoviz/pkg/render"
	"github.com/algoviz/algoviz/pkg/render/scene"
)

// GraphDOT converts a graph snapshot to DOT. Highlighted nodes and the
// snapshot's normalized annotations become fill colors; undirected edges in a
// mixed graph render with dir=none. Edges with unresolvable endpoints are
// emitted anyway and left to Graphviz, which renders the missing node bare —
// visible but harmless, matching the degrade-don't-fail rendering rule.
func GraphDOT(s frame.GraphSnapshot) string {
	ann := annotate.Normalize(s.Highlights)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		label := n.Label
		if label == "" {
			label = strconv.Itoa(n.ID)
		}
		fmt.Fprintf(&buf, "  %d [label=%q%s];\n", n.ID, label, nodeFill(n.ID, n.Highlighted, ann))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		var attrs []string
		if !e.Directed {
			attrs = append(attrs, "dir=none")
		}
		if e.Weight != nil {
			attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatFloat(*e.Weight, 'g', -1, 64)))
		}
		if e.Highlighted {
			attrs = append(attrs, fmt.Sprintf("color=%q", scene.ColorAccent), "penwidth=2.5")
		}
		fmt.Fprintf(&buf, "  %d -> %d%s;\n", e.From, e.To, dotAttrs(attrs))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// TreeDOT converts a tree snapshot to DOT, letting Graphviz lay out the tree
// top-down instead of using the backend's coordinates. Dangling child
// references are skipped.
func TreeDOT(s frame.TreeSnapshot) string {
	ann := annotate.Normalize(s.Highlights)

	var buf bytes.Buffer
	buf.WriteString("digraph T {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [dir=none];\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		fmt.Fprintf(&buf, "  %d [label=%q%s];\n", n.ID, formatValue(n.Value), nodeFill(n.ID, n.Highlighted, ann))
	}

	buf.WriteString("\n")
	for _, n := range s.Nodes {
		for _, childID := range []*int{n.LeftChildID, n.RightChildID} {
			if childID == nil {
				continue
			}
			if _, ok := s.Node(*childID); !ok {
				continue
			}
			fmt.Fprintf(&buf, "  %d -> %d;\n", n.ID, *childID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeFill(id int, highlighted bool, ann annotate.Annotation) string {
	fill := ""
	if highlighted {
		fill = annotate.DefaultColor
	}
	if entry, ok := ann[id]; ok {
		fill = scene.SafeColor(entry.Color, annotate.DefaultColor)
	}
	if fill == "" {
		return ""
	}
	return fmt.Sprintf(", fillcolor=%q", fill)
}

func dotAttrs(attrs []string) string {
	if len(attrs) == 0 {
		return ""
	}
	out := " ["
	for i, a := range attrs {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out + "]"
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG lays out a DOT graph and rasterizes it at the given scale.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's point-based svg tag to a zero-origin
// pixel viewBox so converted PNGs are not tiny.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
