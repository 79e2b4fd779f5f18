package scene

import (
	"math"

	"github.com/algoviz/algoviz/pkg/annotate"
	"github.com/algoviz/algoviz/pkg/frame"
	"github.com/algoviz/algoviz/pkg/geometry"
)

// Graph renders a graph snapshot: edges first (directed edges get arrowheads,
// weighted edges a midpoint weight label), then node circles at the
// backend-supplied coordinates. Edges whose endpoints do not resolve to nodes
// in the snapshot are skipped rather than failing the frame.
func Graph(s frame.GraphSnapshot, ann annotate.Annotation) *Group {
	g := &Group{Kind: KindGraph, Name: s.Name}
	if len(s.Nodes) == 0 {
		return emptyGroup(g, "(empty graph)")
	}

	points := make([]geometry.Point, len(s.Nodes))
	for i, n := range s.Nodes {
		points[i] = geometry.Point{X: n.X, Y: n.Y}
	}
	g.Width, g.Height = geometry.Bounds(points)

	for _, e := range s.Edges {
		from, ok := s.Node(e.From)
		if !ok {
			continue
		}
		to, ok := s.Node(e.To)
		if !ok {
			continue
		}

		stroke, width := ColorStroke, 1.5
		if e.Highlighted {
			stroke, width = ColorAccent, 3.0
		}

		x1, y1, x2, y2 := trimEdge(from.X, from.Y, to.X, to.Y, nodeRadius)
		if e.Directed {
			g.Add(Arrow{X1: x1, Y1: y1, X2: x2, Y2: y2, Stroke: stroke, Width: width})
		} else {
			g.Add(Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Stroke: stroke, Width: width})
		}

		if e.Weight != nil {
			g.Add(Text{
				X: (from.X + to.X) / 2, Y: (from.Y+to.Y)/2 - 6,
				Content: formatValue(*e.Weight), Size: 10, Fill: ColorText, Anchor: "middle",
			})
		}
	}

	for _, n := range s.Nodes {
		fill := ColorBase
		if n.Highlighted {
			fill = annotate.DefaultColor
		}
		entry, annotated := ann[n.ID]
		if annotated {
			fill = SafeColor(entry.Color, annotate.DefaultColor)
		}

		g.Add(Circle{CX: n.X, CY: n.Y, R: nodeRadius, Fill: fill, Stroke: ColorStroke})

		label := n.Label
		if label == "" {
			label = formatValue(float64(n.ID))
		}
		g.Add(Text{X: n.X, Y: n.Y + 4, Content: label, Size: 12, Fill: ColorText, Anchor: "middle"})

		if annotated && entry.Label != "" {
			g.Add(Text{X: n.X, Y: n.Y - nodeRadius - 8, Content: entry.Label, Size: 10, Fill: ColorText, Anchor: "middle", Bold: true})
		}
	}

	return g
}

// trimEdge shortens an edge at both ends by r so connectors stop at node
// perimeters instead of node centers. Coincident endpoints come back
// untouched.
func trimEdge(x1, y1, x2, y2, r float64) (float64, float64, float64, float64) {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist <= 2*r {
		return x1, y1, x2, y2
	}
	ux, uy := dx/dist, dy/dist
	return x1 + ux*r, y1 + uy*r, x2 - ux*r, y2 - uy*r
}
