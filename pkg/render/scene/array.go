package scene

import (
	"fmt"
	"sort"

	"github.com/algoviz/algoviz/pkg/annotate"
	"github.com/algoviz/algoviz/pkg/frame"
	"github.com/algoviz/algoviz/pkg/geometry"
)

// Array layout constants.
const (
	barWidth = 44.0
	barGap   = 8.0
	arrPadX  = 20.0
	arrPadY  = 30.0
)

// Array renders an array snapshot as magnitude-proportional bars with index
// labels, highlight colors, and the search decorations emitted by searching
// algorithms.
func Array(s frame.ArraySnapshot, ann annotate.Annotation) *Group {
	g := &Group{Kind: KindArray, Name: s.Name}
	if len(s.Values) == 0 {
		return emptyGroup(g, "(empty array)")
	}

	heights := geometry.BarHeights(s.Values)
	baseline := arrPadY + geometry.Scale

	g.Width = arrPadX*2 + float64(len(s.Values))*(barWidth+barGap) - barGap
	g.Height = baseline + 46

	if s.SearchRange != nil {
		g.Add(rangeBand(*s.SearchRange, len(s.Values), baseline, ColorBand))
	}

	for i, v := range s.Values {
		x := arrPadX + float64(i)*(barWidth+barGap)

		fill := ColorBase
		if inRanges(i, s.Eliminated) {
			fill = ColorDim
		}
		entry, annotated := ann[i]
		if annotated {
			fill = SafeColor(entry.Color, annotate.DefaultColor)
		}

		g.Add(Rect{X: x, Y: baseline - heights[i], W: barWidth, H: heights[i], Fill: fill, Stroke: ColorStroke})
		g.Add(Text{X: x + barWidth/2, Y: baseline - heights[i] - 6, Content: formatValue(v), Size: 12, Fill: ColorText, Anchor: "middle"})
		g.Add(Text{X: x + barWidth/2, Y: baseline + 16, Content: fmt.Sprintf("%d", i), Size: 10, Fill: ColorStroke, Anchor: "middle"})

		if annotated && entry.Label != "" {
			g.Add(Text{X: x + barWidth/2, Y: baseline - heights[i] - 20, Content: entry.Label, Size: 11, Fill: ColorText, Anchor: "middle", Bold: true})
		}
	}

	if cmp := comparisonPair(s, ann); cmp != nil {
		g.Add(Text{
			X: g.Width / 2, Y: 16,
			Content: fmt.Sprintf("%s vs %s", formatValue(s.Values[cmp[0]]), formatValue(s.Values[cmp[1]])),
			Size:    12, Fill: ColorAccent, Anchor: "middle", Bold: true,
		})
	}

	return g
}

// comparisonPair returns the two indices being compared, or nil. Exactly two
// in-range annotated identifiers form a pair; the backend's comparison index
// joins a single annotated identifier to complete one.
func comparisonPair(s frame.ArraySnapshot, ann annotate.Annotation) []int {
	ids := make([]int, 0, len(ann))
	for id := range ann {
		if id >= 0 && id < len(s.Values) {
			ids = append(ids, id)
		}
	}
	if s.ComparisonIndex != nil {
		ci := *s.ComparisonIndex
		if ci >= 0 && ci < len(s.Values) && !contains(ids, ci) {
			ids = append(ids, ci)
		}
	}
	if len(ids) != 2 {
		return nil
	}
	sort.Ints(ids)
	return ids
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func inRanges(i int, ranges []frame.Range) bool {
	for _, r := range ranges {
		if i >= r.Start && i <= r.End {
			return true
		}
	}
	return false
}

// rangeBand draws the active search window as a band under the bars.
func rangeBand(r frame.Range, n int, baseline float64, fill string) Rect {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > n-1 {
		end = n - 1
	}
	x := arrPadX + float64(start)*(barWidth+barGap)
	w := float64(end-start+1)*(barWidth+barGap) - barGap
	if w < 0 {
		w = 0
	}
	return Rect{X: x - 3, Y: arrPadY - 6, W: w + 6, H: geometry.Scale + 12, Fill: fill, Rx: 4}
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
