package annotate

import (
	"encoding/json"
	"testing"
)

func TestNormalizeFlatList(t *testing.T) {
	a := Normalize(json.RawMessage(`[0, 3]`))

	if len(a) != 2 {
		t.Fatalf("len = %d, want 2", len(a))
	}
	for _, id := range []int{0, 3} {
		e, ok := a[id]
		if !ok {
			t.Errorf("missing entry for id %d", id)
			continue
		}
		if e.Color != DefaultColor {
			t.Errorf("a[%d].Color = %q, want %q", id, e.Color, DefaultColor)
		}
		if e.Label != "" {
			t.Errorf("a[%d].Label = %q, want empty", id, e.Label)
		}
	}
}

func TestNormalizeParallelLists(t *testing.T) {
	raw := json.RawMessage(`{"indices": [2, 5], "colors": ["#f39c12"], "labels": ["MID"]}`)
	a := Normalize(raw)

	if len(a) != 2 {
		t.Fatalf("len = %d, want 2", len(a))
	}
	if a[2].Color != "#f39c12" || a[2].Label != "MID" {
		t.Errorf("a[2] = %+v, want color #f39c12, label MID", a[2])
	}
	// Identifiers past the end of a short color/label list use defaults.
	if a[5].Color != DefaultColor || a[5].Label != "" {
		t.Errorf("a[5] = %+v, want default color, no label", a[5])
	}
}

func TestNormalizeNodeIDs(t *testing.T) {
	a := Normalize(json.RawMessage(`{"node_ids": [7], "colors": ["#2ecc71"]}`))

	if len(a) != 1 {
		t.Fatalf("len = %d, want 1", len(a))
	}
	if a[7].Color != "#2ecc71" {
		t.Errorf("a[7].Color = %q, want #2ecc71", a[7].Color)
	}
}

func TestNormalizeEmptyColorFallsBack(t *testing.T) {
	a := Normalize(json.RawMessage(`{"indices": [1], "colors": [""]}`))
	if a[1].Color != DefaultColor {
		t.Errorf("empty color = %q, want default", a[1].Color)
	}
}

func TestNormalizeDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"absent", ""},
		{"null", "null"},
		{"scalar", "42"},
		{"string", `"red"`},
		{"malformed array", `[1, "x"]`},
		{"malformed object", `{"indices": "nope"}`},
		{"garbage", "{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Normalize(json.RawMessage(tt.raw))
			if len(a) != 0 {
				t.Errorf("Normalize(%q) = %v, want empty", tt.raw, a)
			}
		})
	}
}

func TestNormalizeOutOfRangeRetained(t *testing.T) {
	// Identifiers are not range-checked here; renderers skip absent elements.
	a := Normalize(json.RawMessage(`[99]`))
	if _, ok := a[99]; !ok {
		t.Error("out-of-range identifier should be retained")
	}
}

func TestFromParallelDuplicateKeepsLast(t *testing.T) {
	a := FromParallel([]int{1, 1}, []string{"#111111", "#222222"}, nil)
	if len(a) != 1 {
		t.Fatalf("len = %d, want 1", len(a))
	}
	if a[1].Color != "#222222" {
		t.Errorf("a[1].Color = %q, want last entry", a[1].Color)
	}
}

func TestMerge(t *testing.T) {
	base := Annotation{
		1: {Color: "#aaaaaa"},
		2: {Color: "#bbbbbb", Label: "B"},
	}
	override := Annotation{
		2: {Color: "#cccccc"},
		3: {Color: "#dddddd"},
	}

	merged := Merge(base, override)

	if len(merged) != 3 {
		t.Fatalf("len = %d, want 3", len(merged))
	}
	if merged[1].Color != "#aaaaaa" {
		t.Errorf("merged[1] = %+v, want base entry", merged[1])
	}
	if merged[2].Color != "#cccccc" || merged[2].Label != "" {
		t.Errorf("merged[2] = %+v, want override entry", merged[2])
	}
	if merged[3].Color != "#dddddd" {
		t.Errorf("merged[3] = %+v, want override entry", merged[3])
	}

	// Inputs are not mutated.
	if base[2].Color != "#bbbbbb" {
		t.Error("Merge mutated base")
	}
}

func TestMergeEmptyBase(t *testing.T) {
	override := Annotation{1: {Color: "#ffffff"}}
	merged := Merge(Annotation{}, override)
	if len(merged) != 1 || merged[1].Color != "#ffffff" {
		t.Errorf("merged = %v, want override only", merged)
	}
}

func TestIDs(t *testing.T) {
	a := FromIDs([]int{4, 2})
	ids := a.IDs()
	if len(ids) != 2 {
		t.Fatalf("len(IDs()) = %d, want 2", len(ids))
	}
	seen := map[int]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[4] || !seen[2] {
		t.Errorf("IDs() = %v, want {2, 4}", ids)
	}
}
