package scene

import (
	"fmt"
	"strings"

	"github.com/algoviz/algoviz/pkg/annotate"
	"github.com/algoviz/algoviz/pkg/frame"
)

// Structure categories, in the fixed order composite frames render them.
const (
	KindArray       = "array"
	KindTree        = "tree"
	KindGraph       = "graph"
	KindLinkedList  = "linked_list"
	KindStack       = "stack"
	KindQueue       = "queue"
	KindVariables   = "variables"
	KindPlaceholder = "placeholder"
)

const groupGap = 40.0

// KindForModule maps an algorithm module tag to the structure category it
// visualizes. Sorting and searching modules both visualize arrays; the
// remaining tags name their structure directly.
func KindForModule(module string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(module)) {
	case "sorting", "searching", "array", "arrays":
		return KindArray, true
	case "stack", "stacks":
		return KindStack, true
	case "queue", "queues":
		return KindQueue, true
	case "linkedlist", "linked_list", "linked_lists", "list":
		return KindLinkedList, true
	case "tree", "trees":
		return KindTree, true
	case "graph", "graphs":
		return KindGraph, true
	default:
		return "", false
	}
}

// Compose builds the visual description of one frame. A recognized module tag
// restricts rendering to that structure category; an empty tag renders every
// populated category side-by-side in fixed order; an unrecognized tag yields
// a warning placeholder instead of an error. A frame with nothing to show
// yields an explicit empty-state placeholder.
//
// Each structure renders independently: a malformed or empty snapshot
// degrades to its own placeholder without affecting its siblings.
func Compose(f frame.Frame, module string) *Scene {
	groups := collect(f, module)
	if len(groups) == 0 {
		groups = []*Group{Empty()}
	}

	sc := &Scene{Description: f.Description, Groups: groups}
	x := 0.0
	for _, g := range groups {
		g.OX, g.OY = x, 0
		x += g.Width + groupGap
		if g.Height > sc.Height {
			sc.Height = g.Height
		}
	}
	sc.Width = x - groupGap
	return sc
}

func collect(f frame.Frame, module string) []*Group {
	if module != "" {
		kind, ok := KindForModule(module)
		if !ok {
			return []*Group{Unsupported(module)}
		}
		return collectKind(f, kind)
	}

	var groups []*Group
	for _, kind := range []string{KindArray, KindTree, KindGraph, KindLinkedList, KindStack, KindQueue} {
		groups = append(groups, collectKind(f, kind)...)
	}
	if len(f.Variables) > 0 {
		groups = append(groups, Variables(f.Variables))
	}
	return groups
}

func collectKind(f frame.Frame, kind string) []*Group {
	var groups []*Group
	switch kind {
	case KindArray:
		for _, s := range f.Arrays {
			groups = append(groups, Array(s, annotate.Normalize(s.Highlights)))
		}
	case KindTree:
		for _, s := range f.Trees {
			groups = append(groups, Tree(s, treeAnnotation(s)))
		}
	case KindGraph:
		for _, s := range f.Graphs {
			groups = append(groups, Graph(s, graphAnnotation(s)))
		}
	case KindLinkedList:
		for _, s := range f.LinkedLists {
			groups = append(groups, LinkedList(s, annotate.Normalize(s.Highlights)))
		}
	case KindStack:
		for _, s := range f.Stacks {
			groups = append(groups, Stack(s, annotate.Normalize(s.Highlights)))
		}
	case KindQueue:
		for _, s := range f.Queues {
			groups = append(groups, Queue(s, annotate.Normalize(s.Highlights)))
		}
	}
	return groups
}

// treeAnnotation folds per-node highlighted flags and node colors into a
// base annotation, then lets the snapshot's raw highlight payload override
// it. A node both flagged and explicitly annotated shows the explicit color
// and label.
func treeAnnotation(s frame.TreeSnapshot) annotate.Annotation {
	base := annotate.Annotation{}
	for _, n := range s.Nodes {
		if e, ok := nodeEntry(n.Color, n.Highlighted); ok {
			base[n.ID] = e
		}
	}
	return annotate.Merge(base, annotate.Normalize(s.Highlights))
}

func graphAnnotation(s frame.GraphSnapshot) annotate.Annotation {
	base := annotate.Annotation{}
	for _, n := range s.Nodes {
		if e, ok := nodeEntry(n.Color, n.Highlighted); ok {
			base[n.ID] = e
		}
	}
	return annotate.Merge(base, annotate.Normalize(s.Highlights))
}

// nodeEntry builds the base annotation entry for a node's own color and
// highlighted flag. An explicit node color wins over the flag default.
func nodeEntry(color string, highlighted bool) (annotate.Entry, bool) {
	if color != "" {
		return annotate.Entry{Color: color}, true
	}
	if highlighted {
		return annotate.Entry{Color: annotate.DefaultColor}, true
	}
	return annotate.Entry{}, false
}

// Unsupported is the placeholder for an unrecognized module tag.
func Unsupported(module string) *Group {
	g := &Group{Kind: KindPlaceholder, Width: 360, Height: 80}
	g.Add(Rect{X: 0, Y: 0, W: g.Width, H: g.Height, Fill: "#fdf2e9", Stroke: ColorWarn, Rx: 6})
	g.Add(Text{X: g.Width / 2, Y: g.Height/2 + 4, Content: fmt.Sprintf("unsupported visualization type: %q", module), Size: 12, Fill: ColorWarn, Anchor: "middle", Bold: true})
	return g
}

// Empty is the placeholder for a frame with no structures or variables.
func Empty() *Group {
	g := &Group{Kind: KindPlaceholder, Width: 300, Height: 80}
	g.Add(Rect{X: 0, Y: 0, W: g.Width, H: g.Height, Fill: ColorBase, Stroke: ColorStroke, Rx: 6})
	g.Add(Text{X: g.Width / 2, Y: g.Height/2 + 4, Content: "nothing to show yet", Size: 12, Fill: ColorStroke, Anchor: "middle"})
	return g
}

// emptyGroup turns a structure group with no elements into a small labeled
// placeholder, preserving its kind and name.
func emptyGroup(g *Group, msg string) *Group {
	g.Width, g.Height = 220, 64
	g.Add(Rect{X: 0, Y: 0, W: g.Width, H: g.Height, Fill: ColorBase, Stroke: ColorStroke, Rx: 6})
	g.Add(Text{X: g.Width / 2, Y: g.Height/2 + 4, Content: msg, Size: 12, Fill: ColorStroke, Anchor: "middle"})
	return g
}
