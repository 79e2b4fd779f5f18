package scene

import (
	"fmt"

	"github.com/algoviz/algoviz/pkg/annotate"
	"github.com/algoviz/algoviz/pkg/frame"
)

const (
	cellWidth  = 96.0
	cellHeight = 34.0
	cellGap    = 4.0
	stkPadX    = 60.0
	stkPadY    = 26.0
)

// Stack renders a stack snapshot top-of-stack first: the last logical element
// is drawn topmost and carries the TOP marker.
func Stack(s frame.StackSnapshot, ann annotate.Annotation) *Group {
	g := &Group{Kind: KindStack, Name: s.Name}
	n := len(s.Values)
	if n == 0 {
		return emptyGroup(g, "(empty stack)")
	}

	g.Width = stkPadX*2 + cellWidth
	g.Height = stkPadY*2 + float64(n)*(cellHeight+cellGap) - cellGap

	for row := 0; row < n; row++ {
		// Display row 0 holds the last logical element.
		idx := n - 1 - row
		y := stkPadY + float64(row)*(cellHeight+cellGap)

		fill := ColorBase
		entry, annotated := ann[idx]
		if annotated {
			fill = SafeColor(entry.Color, annotate.DefaultColor)
		}

		g.Add(Rect{X: stkPadX, Y: y, W: cellWidth, H: cellHeight, Fill: fill, Stroke: ColorStroke, Rx: 3})
		g.Add(Text{X: stkPadX + cellWidth/2, Y: y + cellHeight/2 + 4, Content: formatValue(s.Values[idx]), Size: 12, Fill: ColorText, Anchor: "middle"})
		g.Add(Text{X: stkPadX - 8, Y: y + cellHeight/2 + 4, Content: fmt.Sprintf("%d", idx), Size: 10, Fill: ColorStroke, Anchor: "end"})

		if row == 0 {
			g.Add(Text{X: stkPadX + cellWidth + 10, Y: y + cellHeight/2 + 4, Content: "TOP", Size: 11, Fill: ColorAccent, Anchor: "start", Bold: true})
		}
		if annotated && entry.Label != "" {
			g.Add(Text{X: stkPadX + cellWidth + 10, Y: y + cellHeight/2 + 18, Content: entry.Label, Size: 10, Fill: ColorText, Anchor: "start"})
		}
	}

	return g
}
