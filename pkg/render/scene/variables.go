package scene

import (
	"fmt"

	"github.com/algoviz/algoviz/pkg/frame"
)

const (
	varRowH = 18.0
	varPad  = 16.0
)

// Variables renders the frame's scalar variable bindings as a simple text
// panel, one "name = value" row per variable.
func Variables(vars []frame.Variable) *Group {
	g := &Group{Kind: KindVariables}
	if len(vars) == 0 {
		return emptyGroup(g, "(no variables)")
	}

	g.Width = 260
	g.Height = varPad*2 + float64(len(vars))*varRowH + 20

	g.Add(Rect{X: 0, Y: 0, W: g.Width, H: g.Height, Fill: "#fdfefe", Stroke: ColorStroke, Rx: 6})
	g.Add(Text{X: varPad, Y: varPad + 4, Content: "variables", Size: 11, Fill: ColorStroke, Bold: true})

	for i, v := range vars {
		y := varPad + 24 + float64(i)*varRowH
		row := fmt.Sprintf("%s = %s", v.Name, v.Value)
		if v.Type != "" {
			row = fmt.Sprintf("%s (%s)", row, v.Type)
		}
		g.Add(Text{X: varPad, Y: y, Content: row, Size: 12, Fill: ColorText})
	}

	return g
}
