package scene

import (
	"github.com/algoviz/algoviz/pkg/annotate"
	"github.com/algoviz/algoviz/pkg/frame"
	"github.com/algoviz/algoviz/pkg/geometry"
)

const nodeRadius = 22.0

// Tree renders a tree snapshot from backend-supplied node coordinates. Edges
// are emitted before node circles so connectors never overdraw nodes; child
// references that resolve to no node in the snapshot are skipped.
func Tree(s frame.TreeSnapshot, ann annotate.Annotation) *Group {
	g := &Group{Kind: KindTree, Name: s.Name}
	if len(s.Nodes) == 0 {
		return emptyGroup(g, "(empty tree)")
	}

	points := make([]geometry.Point, len(s.Nodes))
	for i, n := range s.Nodes {
		points[i] = geometry.Point{X: n.X, Y: n.Y}
	}
	g.Width, g.Height = geometry.Bounds(points)

	for _, n := range s.Nodes {
		for _, childID := range []*int{n.LeftChildID, n.RightChildID} {
			if childID == nil {
				continue
			}
			child, ok := s.Node(*childID)
			if !ok {
				continue
			}
			g.Add(Line{X1: n.X, Y1: n.Y, X2: child.X, Y2: child.Y, Stroke: ColorStroke, Width: 1.5})
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
		g.Add(Text{X: n.X, Y: n.Y + 4, Content: formatValue(n.Value), Size: 12, Fill: ColorText, Anchor: "middle"})

		// Labels only when the annotation carries one; highlight color alone
		// never produces a label.
		if annotated && entry.Label != "" {
			g.Add(Text{X: n.X, Y: n.Y - nodeRadius - 8, Content: entry.Label, Size: 10, Fill: ColorText, Anchor: "middle", Bold: true})
		}
	}

	return g
}
