package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/algoviz/algoviz/pkg/cache"
	"github.com/algoviz/algoviz/pkg/errors"
	"github.com/algoviz/algoviz/pkg/frame"
)

func writeSessionFile(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sortingSession = `{
  "metadata": {"name": "bubble sort", "module": "sorting", "total_frames": 2},
  "visualization": {
    "frames": [
      {"frame_id": 0, "description": "initial", "arrays": [{"values": [3, 1, 2]}]},
      {"frame_id": 1, "description": "swap", "arrays": [{"values": [1, 3, 2], "highlights": [0, 1]}]}
    ]
  }
}`

func TestOptionsValidation(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty options = %v, want INVALID_INPUT", err)
	}

	opts = Options{Input: "x.json", FrameIndex: -1}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("negative index = %v, want INVALID_INDEX", err)
	}

	opts = Options{Input: "x.json", Formats: []string{"gif"}}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format = %v, want INVALID_FORMAT", err)
	}

	opts = Options{Input: "x.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("minimal options = %v, want nil", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("default scale = %v, want %v", opts.Scale, DefaultScale)
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second validation = %v, want nil", err)
	}
}

func TestExecuteRendersSVGAndJSON(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(ctx, Options{
		Input:      writeSessionFile(t, sortingSession),
		FrameIndex: 1,
		Formats:    []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.FrameCount != 2 {
		t.Errorf("FrameCount = %d, want 2", result.Stats.FrameCount)
	}
	if result.Session.Module != "sorting" {
		t.Errorf("Module = %q, want %q", result.Session.Module, "sorting")
	}

	svg := string(result.Artifacts[FormatSVG])
	if !strings.Contains(svg, "<svg") {
		t.Error("svg artifact missing root element")
	}
	if !strings.Contains(svg, "swap") {
		t.Error("svg artifact missing frame description")
	}

	var doc struct {
		FrameID int `json:"frame_id"`
		Groups  []struct {
			Kind string `json:"kind"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact invalid: %v", err)
	}
	if doc.FrameID != 1 {
		t.Errorf("json frame_id = %d, want 1", doc.FrameID)
	}
	if len(doc.Groups) != 1 || doc.Groups[0].Kind != "array" {
		t.Errorf("json groups = %+v, want one array group", doc.Groups)
	}
	if result.FrameHash == "" {
		t.Error("FrameHash not set")
	}
}

func TestExecuteFrameIndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(ctx, Options{
		Input:      writeSessionFile(t, sortingSession),
		FrameIndex: 99,
	})
	if !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("Execute = %v, want INVALID_INDEX", err)
	}
}

func TestExecuteBareFrameList(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(ctx, Options{
		Input: writeSessionFile(t, `[{"frame_id": 0, "stacks": [{"values": [1, 2]}]}]`),
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Stats.FrameCount != 1 {
		t.Errorf("FrameCount = %d, want 1", result.Stats.FrameCount)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "TOP") {
		t.Error("stack frame should render a TOP marker")
	}
}

func TestExecuteDOTRequiresGraphOrTree(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(ctx, Options{
		Input:   writeSessionFile(t, sortingSession),
		Formats: []string{FormatDOT},
	})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("dot of array frame = %v, want UNSUPPORTED", err)
	}

	graphDoc := `[{"frame_id": 0, "graphs": [{"nodes": [{"id": 1}, {"id": 2}], "edges": [{"from": 1, "to": 2, "directed": true}]}]}]`
	result, err := r.Execute(ctx, Options{
		Input:   writeSessionFile(t, graphDoc),
		Formats: []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact missing digraph")
	}
}

func TestRenderArtifactCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{
		Input:      writeSessionFile(t, sortingSession),
		FrameIndex: 0,
		Formats:    []string{FormatSVG},
	}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute error: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run should not report a cache hit")
	}
}

func TestRenderCacheKeyedByBackground(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{
		Input:      writeSessionFile(t, sortingSession),
		FrameIndex: 0,
		Formats:    []string{FormatSVG},
		Background: "#ffffff",
	}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("first Execute error: %v", err)
	}

	opts.Background = "#000000"
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if second.CacheInfo.RenderHit {
		t.Error("changing the background must not reuse the cached artifact")
	}
	if !strings.Contains(string(second.Artifacts[FormatSVG]), "#000000") {
		t.Error("svg artifact missing the requested background")
	}
}

func TestFrameHashContentAddressed(t *testing.T) {
	f1 := frame.Frame{FrameID: 0, Arrays: []frame.ArraySnapshot{{Values: []float64{1, 2}}}}
	f2 := frame.Frame{FrameID: 0, Arrays: []frame.ArraySnapshot{{Values: []float64{1, 2}}}}
	f3 := frame.Frame{FrameID: 0, Arrays: []frame.ArraySnapshot{{Values: []float64{2, 1}}}}

	if FrameHash(f1) != FrameHash(f2) {
		t.Error("identical frames must hash identically")
	}
	if FrameHash(f1) == FrameHash(f3) {
		t.Error("different frames must hash differently")
	}
}

func TestSelectFrame(t *testing.T) {
	s := &frame.Session{Frames: []frame.Frame{{FrameID: 0}, {FrameID: 1}}}

	f, err := SelectFrame(s, 1)
	if err != nil {
		t.Fatalf("SelectFrame error: %v", err)
	}
	if f.FrameID != 1 {
		t.Errorf("FrameID = %d, want 1", f.FrameID)
	}

	if _, err := SelectFrame(s, 2); !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("out of range = %v, want INVALID_INDEX", err)
	}
	if _, err := SelectFrame(&frame.Session{}, 0); !errors.Is(err, errors.ErrCodeInvalidSession) {
		t.Errorf("empty session = %v, want INVALID_SESSION", err)
	}
}
