package scene

import (
	"fmt"

	"github.com/algoviz/algoviz/pkg/annotate"
	"github.com/algoviz/algoviz/pkg/frame"
)

const (
	qPadX = 24.0
	qPadY = 40.0
)

// Queue renders a queue snapshot left to right with FRONT and REAR markers.
// The snapshot's explicit front/rear indices override the positional defaults
// (first and last element) when present and in range.
func Queue(s frame.QueueSnapshot, ann annotate.Annotation) *Group {
	g := &Group{Kind: KindQueue, Name: s.Name}
	n := len(s.Values)
	if n == 0 {
		// An empty queue is a meaningful algorithm state (fully drained), so
		// it gets an explicit placeholder instead of being skipped.
		return emptyGroup(g, "(empty queue)")
	}

	front, rear := 0, n-1
	if s.FrontIndex != nil && *s.FrontIndex >= 0 && *s.FrontIndex < n {
		front = *s.FrontIndex
	}
	if s.RearIndex != nil && *s.RearIndex >= 0 && *s.RearIndex < n {
		rear = *s.RearIndex
	}

	g.Width = qPadX*2 + float64(n)*(cellWidth+cellGap) - cellGap
	g.Height = qPadY*2 + cellHeight + 20

	for i, v := range s.Values {
		x := qPadX + float64(i)*(cellWidth+cellGap)

		fill := ColorBase
		entry, annotated := ann[i]
		if annotated {
			fill = SafeColor(entry.Color, annotate.DefaultColor)
		}

		g.Add(Rect{X: x, Y: qPadY, W: cellWidth, H: cellHeight, Fill: fill, Stroke: ColorStroke, Rx: 3})
		g.Add(Text{X: x + cellWidth/2, Y: qPadY + cellHeight/2 + 4, Content: formatValue(v), Size: 12, Fill: ColorText, Anchor: "middle"})
		g.Add(Text{X: x + cellWidth/2, Y: qPadY + cellHeight + 16, Content: fmt.Sprintf("%d", i), Size: 10, Fill: ColorStroke, Anchor: "middle"})

		if i == front {
			g.Add(Text{X: x + cellWidth/2, Y: qPadY - 10, Content: "FRONT", Size: 11, Fill: ColorAccent, Anchor: "middle", Bold: true})
		}
		if i == rear {
			g.Add(Text{X: x + cellWidth/2, Y: qPadY + cellHeight + 32, Content: "REAR", Size: 11, Fill: ColorAccent, Anchor: "middle", Bold: true})
		}
		if annotated && entry.Label != "" {
			g.Add(Text{X: x + cellWidth/2, Y: qPadY - 24, Content: entry.Label, Size: 10, Fill: ColorText, Anchor: "middle"})
		}
	}

	return g
}
