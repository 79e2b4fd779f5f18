package frame

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSessionEnvelope(t *testing.T) {
	doc := `{
	  "metadata": {"name": "bubble sort", "module": "sorting", "total_frames": 2},
	  "visualization": {
	    "frames": [
	      {"frame_id": 0, "description": "initial"},
	      {"frame_id": 1, "description": "swap"}
	    ]
	  }
	}`

	s, err := ParseSession([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSession error: %v", err)
	}
	if s.Name != "bubble sort" {
		t.Errorf("Name = %q, want %q", s.Name, "bubble sort")
	}
	if s.Module != "sorting" {
		t.Errorf("Module = %q, want %q", s.Module, "sorting")
	}
	if len(s.Frames) != 2 {
		t.Fatalf("len(Frames) = %d, want 2", len(s.Frames))
	}
	if s.Frames[1].Description != "swap" {
		t.Errorf("Frames[1].Description = %q, want %q", s.Frames[1].Description, "swap")
	}
	if s.ID == "" {
		t.Error("session should be assigned an id")
	}
	if s.CreatedAt.IsZero() {
		t.Error("session should be assigned a creation time")
	}
}

func TestParseSessionTopLevelFrames(t *testing.T) {
	doc := `{"metadata": {"module": "stack"}, "frames": [{"frame_id": 0}]}`

	s, err := ParseSession([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSession error: %v", err)
	}
	if s.Module != "stack" {
		t.Errorf("Module = %q, want %q", s.Module, "stack")
	}
	if len(s.Frames) != 1 {
		t.Errorf("len(Frames) = %d, want 1", len(s.Frames))
	}
}

func TestParseSessionBareList(t *testing.T) {
	doc := ` [{"frame_id": 0, "arrays": [{"values": [1, 2]}]}]`

	s, err := ParseSession([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSession error: %v", err)
	}
	if s.Name != "" || s.Module != "" {
		t.Errorf("bare list should have no metadata, got name %q module %q", s.Name, s.Module)
	}
	if len(s.Frames) != 1 {
		t.Fatalf("len(Frames) = %d, want 1", len(s.Frames))
	}
	if got := s.Frames[0].Arrays[0].Values; len(got) != 2 || got[0] != 1 {
		t.Errorf("array values = %v, want [1 2]", got)
	}
}

func TestParseSessionIDsUnique(t *testing.T) {
	a, err := ParseSession([]byte(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseSession([]byte(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Error("each parsed session should get a distinct id")
	}
}

func TestParseSessionErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"whitespace only", "  \n\t"},
		{"malformed object", "{not json"},
		{"malformed list", "[{]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSession([]byte(tt.doc)); err == nil {
				t.Errorf("ParseSession(%q) = nil error, want error", tt.doc)
			}
		})
	}
}

func TestSessionFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := ParseSession([]byte(`{
	  "metadata": {"name": "bfs", "module": "graph"},
	  "visualization": {"frames": [{"frame_id": 0}]}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	if err := WriteSessionFile(s, path); err != nil {
		t.Fatalf("WriteSessionFile error: %v", err)
	}

	// Re-reading goes through shape sniffing again: the canonical session
	// JSON carries top-level frames but no metadata object, so only the
	// frame list survives the round trip.
	got, err := ReadSessionFile(path)
	if err != nil {
		t.Fatalf("ReadSessionFile error: %v", err)
	}
	if len(got.Frames) != 1 {
		t.Errorf("len(Frames) = %d, want 1", len(got.Frames))
	}
}

func TestReadSessionFileMissing(t *testing.T) {
	_, err := ReadSessionFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("ReadSessionFile of missing file should error")
	}
}

func TestVariableScalarValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"string value", `{"name": "i", "value": "3", "type": "int"}`, "3"},
		{"numeric value", `{"name": "i", "value": 3}`, "3"},
		{"float value", `{"name": "pivot", "value": 2.5}`, "2.5"},
		{"bool value", `{"name": "sorted", "value": true}`, "true"},
		{"missing value", `{"name": "x"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Variable
			if err := json.Unmarshal([]byte(tt.doc), &v); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			if v.Value != tt.want {
				t.Errorf("Value = %q, want %q", v.Value, tt.want)
			}
		})
	}
}

func TestFrameIsEmpty(t *testing.T) {
	var f Frame
	if !f.IsEmpty() {
		t.Error("zero frame should be empty")
	}

	f.Stacks = []StackSnapshot{{Values: []float64{1}}}
	if f.IsEmpty() {
		t.Error("frame with a stack should not be empty")
	}
}

func TestSnapshotNodeLookups(t *testing.T) {
	tree := TreeSnapshot{Nodes: []TreeNode{{ID: 1, Value: 10}, {ID: 2, Value: 20}}}
	if n, ok := tree.Node(2); !ok || n.Value != 20 {
		t.Errorf("tree.Node(2) = %+v, %v; want value 20", n, ok)
	}
	if _, ok := tree.Node(99); ok {
		t.Error("tree.Node(99) should miss")
	}

	g := GraphSnapshot{Nodes: []GraphNode{{ID: 5, Label: "A"}}}
	if n, ok := g.Node(5); !ok || n.Label != "A" {
		t.Errorf("graph.Node(5) = %+v, %v; want label A", n, ok)
	}

	l := ListSnapshot{Nodes: []ListNode{{ID: 7, Value: 70}}}
	if n, ok := l.Node(7); !ok || n.Value != 70 {
		t.Errorf("list.Node(7) = %+v, %v; want value 70", n, ok)
	}
}

func TestFrameDecodeHighlightsRaw(t *testing.T) {
	doc := `{"frame_id": 0, "arrays": [{"values": [1], "highlights": {"indices": [0], "colors": ["#e74c3c"]}}]}`

	var f Frame
	if err := json.Unmarshal([]byte(doc), &f); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	raw := string(f.Arrays[0].Highlights)
	if !strings.Contains(raw, "indices") {
		t.Errorf("Highlights = %q, want raw passthrough", raw)
	}
}
