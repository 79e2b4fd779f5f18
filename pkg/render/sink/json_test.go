package sink

import (
	"encoding/json"
	"testing"

	"github.com/algoviz/algoviz/pkg/render/scene"
)

func TestRenderJSONShape(t *testing.T) {
	data, err := RenderJSON(testScene(), WithJSONFrameID(3), WithJSONModule("sorting"))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out struct {
		FrameID     int     `json:"frame_id"`
		Module      string  `json:"module"`
		Description string  `json:"description"`
		Width       float64 `json:"width"`
		Groups      []struct {
			Kind     string `json:"kind"`
			Elements []struct {
				Type    string `json:"type"`
				Fill    string `json:"fill"`
				Content string `json:"content"`
			} `json:"elements"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if out.FrameID != 3 || out.Module != "sorting" {
		t.Errorf("frame_id/module = %d/%q, want 3/%q", out.FrameID, out.Module, "sorting")
	}
	if out.Description != "step 1" {
		t.Errorf("description = %q, want %q", out.Description, "step 1")
	}
	if len(out.Groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(out.Groups))
	}

	types := make([]string, 0, 3)
	for _, e := range out.Groups[0].Elements {
		types = append(types, e.Type)
	}
	want := []string{"rect", "arrow", "text"}
	for i, w := range want {
		if types[i] != w {
			t.Errorf("elements[%d].type = %q, want %q", i, types[i], w)
		}
	}
}

func TestRenderJSONValidatesColors(t *testing.T) {
	g := &scene.Group{Kind: scene.KindArray, Width: 10, Height: 10}
	g.Add(scene.Rect{W: 10, H: 10, Fill: "bogus"})
	data, err := RenderJSON(&scene.Scene{Width: 10, Height: 10, Groups: []*scene.Group{g}})
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.Groups[0].Elements[0].Fill; got != scene.ColorText {
		t.Errorf("invalid fill exported as %q, want fallback %q", got, scene.ColorText)
	}
}

func TestRenderJSONOmitsUnsetOptions(t *testing.T) {
	data, err := RenderJSON(testScene())
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["frame_id"]; ok {
		t.Error("frame_id present without WithJSONFrameID")
	}
	if _, ok := raw["module"]; ok {
		t.Error("module present without WithJSONModule")
	}
}
