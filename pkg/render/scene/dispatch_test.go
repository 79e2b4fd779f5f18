package scene

import (
	"testing"

	"github.com/algoviz/algoviz/pkg/frame"
)

func TestKindForModule(t *testing.T) {
	cases := []struct {
		module string
		want   string
		ok     bool
	}{
		{"sorting", KindArray, true},
		{"searching", KindArray, true},
		{"Stack", KindStack, true},
		{"queues", KindQueue, true},
		{"linkedlist", KindLinkedList, true},
		{"linked_list", KindLinkedList, true},
		{"trees", KindTree, true},
		{"graphs", KindGraph, true},
		{"quantum", "", false},
	}
	for _, tc := range cases {
		got, ok := KindForModule(tc.module)
		if got != tc.want || ok != tc.ok {
			t.Errorf("KindForModule(%q) = %q, %v, want %q, %v", tc.module, got, ok, tc.want, tc.ok)
		}
	}
}

func TestComposeFixedCategoryOrder(t *testing.T) {
	f := frame.Frame{
		Stacks: []frame.StackSnapshot{{Values: []float64{1}}},
		Arrays: []frame.ArraySnapshot{{Values: []float64{1, 2}}},
		Trees:  []frame.TreeSnapshot{{Nodes: []frame.TreeNode{{ID: 1, X: 50, Y: 50}}}},
	}
	sc := Compose(f, "")

	want := []string{KindArray, KindTree, KindStack}
	if len(sc.Groups) != len(want) {
		t.Fatalf("len(groups) = %d, want %d", len(sc.Groups), len(want))
	}
	for i, g := range sc.Groups {
		if g.Kind != want[i] {
			t.Errorf("groups[%d].Kind = %q, want %q", i, g.Kind, want[i])
		}
	}

	// Side-by-side: each group offset past its predecessor.
	for i := 1; i < len(sc.Groups); i++ {
		prev := sc.Groups[i-1]
		if sc.Groups[i].OX != prev.OX+prev.Width+groupGap {
			t.Errorf("groups[%d].OX = %v, want %v", i, sc.Groups[i].OX, prev.OX+prev.Width+groupGap)
		}
	}
}

func TestComposeModuleTagRestrictsKind(t *testing.T) {
	f := frame.Frame{
		Arrays: []frame.ArraySnapshot{{Values: []float64{1}}},
		Stacks: []frame.StackSnapshot{{Values: []float64{2}}},
	}
	sc := Compose(f, "stack")
	if len(sc.Groups) != 1 || sc.Groups[0].Kind != KindStack {
		t.Fatalf("groups = %d of kind %q, want 1 stack group", len(sc.Groups), sc.Groups[0].Kind)
	}
}

func TestComposeUnsupportedModulePlaceholder(t *testing.T) {
	sc := Compose(frame.Frame{}, "hologram")
	if len(sc.Groups) != 1 || sc.Groups[0].Kind != KindPlaceholder {
		t.Fatal("unsupported module tag must yield a placeholder group")
	}
	if !hasText(sc.Groups[0], `unsupported visualization type: "hologram"`) {
		t.Error("placeholder warning text missing")
	}
}

func TestComposeEmptyFramePlaceholder(t *testing.T) {
	sc := Compose(frame.Frame{Description: "start"}, "")
	if len(sc.Groups) != 1 || sc.Groups[0].Kind != KindPlaceholder {
		t.Fatal("empty frame must yield a placeholder group")
	}
	if sc.Description != "start" {
		t.Errorf("description = %q, want %q", sc.Description, "start")
	}
}

func TestComposeSceneEnclosesGroups(t *testing.T) {
	f := frame.Frame{
		Arrays: []frame.ArraySnapshot{{Values: []float64{1, 2, 3}}},
		Queues: []frame.QueueSnapshot{{Values: []float64{1}}},
	}
	sc := Compose(f, "")
	for _, g := range sc.Groups {
		if g.OX+g.Width > sc.Width {
			t.Errorf("group %q overflows scene width", g.Kind)
		}
		if g.Height > sc.Height {
			t.Errorf("group %q overflows scene height", g.Kind)
		}
	}
}

func TestComposeMalformedSiblingIsolated(t *testing.T) {
	f := frame.Frame{
		Arrays: []frame.ArraySnapshot{
			{}, // no values: degrades to placeholder
			{Values: []float64{1, 2}},
		},
	}
	sc := Compose(f, "")
	if len(sc.Groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(sc.Groups))
	}
	if !hasText(sc.Groups[0], "(empty array)") {
		t.Error("empty sibling must degrade to a placeholder")
	}
	if len(rects(sc.Groups[1])) != 2 {
		t.Error("healthy sibling must render normally")
	}
}
