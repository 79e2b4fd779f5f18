package scene

import (
	"github.com/algoviz/algoviz/pkg/annotate"
	"github.com/algoviz/algoviz/pkg/frame"
)

const (
	llNodeW  = 72.0
	llNodeH  = 40.0
	llArrowW = 40.0
	llPadX   = 30.0
	llPadY   = 44.0
)

// LinkedList renders a linked list snapshot in node order with arrows between
// consecutive nodes, a NULL terminal after the last node, and HEAD/TAIL
// markers on the nodes the snapshot designates (defaulting to the first and
// last node in sequence).
func LinkedList(s frame.ListSnapshot, ann annotate.Annotation) *Group {
	g := &Group{Kind: KindLinkedList, Name: s.Name}
	n := len(s.Nodes)
	if n == 0 {
		return emptyGroup(g, "(empty list)")
	}

	headID, tailID := s.Nodes[0].ID, s.Nodes[n-1].ID
	if s.HeadID != nil {
		headID = *s.HeadID
	}
	if s.TailID != nil {
		tailID = *s.TailID
	}

	g.Width = llPadX*2 + float64(n)*(llNodeW+llArrowW) + 44 // trailing NULL
	g.Height = llPadY*2 + llNodeH

	for i, node := range s.Nodes {
		x := llPadX + float64(i)*(llNodeW+llArrowW)
		cy := llPadY + llNodeH/2

		fill := ColorBase
		if node.Highlighted {
			fill = annotate.DefaultColor
		}
		entry, annotated := ann[node.ID]
		if annotated {
			fill = SafeColor(entry.Color, annotate.DefaultColor)
		}

		g.Add(Rect{X: x, Y: llPadY, W: llNodeW, H: llNodeH, Fill: fill, Stroke: ColorStroke, Rx: 6})
		g.Add(Text{X: x + llNodeW/2, Y: cy + 4, Content: formatValue(node.Value), Size: 12, Fill: ColorText, Anchor: "middle"})

		g.Add(Arrow{X1: x + llNodeW, Y1: cy, X2: x + llNodeW + llArrowW - 6, Y2: cy, Stroke: ColorStroke, Width: 1.5})

		if node.ID == headID {
			g.Add(Text{X: x + llNodeW/2, Y: llPadY - 12, Content: "HEAD", Size: 11, Fill: ColorAccent, Anchor: "middle", Bold: true})
		}
		if node.ID == tailID {
			g.Add(Text{X: x + llNodeW/2, Y: llPadY + llNodeH + 18, Content: "TAIL", Size: 11, Fill: ColorAccent, Anchor: "middle", Bold: true})
		}
		if annotated && entry.Label != "" {
			g.Add(Text{X: x + llNodeW/2, Y: llPadY - 26, Content: entry.Label, Size: 10, Fill: ColorText, Anchor: "middle"})
		}
	}

	nullX := llPadX + float64(n)*(llNodeW+llArrowW)
	g.Add(Text{X: nullX, Y: llPadY + llNodeH/2 + 4, Content: "NULL", Size: 12, Fill: ColorStroke, Anchor: "start"})

	return g
}
