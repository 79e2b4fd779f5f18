package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/algoviz/algoviz/pkg/frame"
)

func intPtr(v int) *int { return &v }

func testPlaySession() *frame.Session {
	return &frame.Session{
		Name:   "bubble sort",
		Module: "sorting",
		Frames: []frame.Frame{
			{FrameID: 0, Description: "initial", Arrays: []frame.ArraySnapshot{{Values: []float64{3, 1, 2}}}},
			{FrameID: 1, Description: "compare"},
			{FrameID: 2, Description: "done"},
		},
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestPlayerModelStepping(t *testing.T) {
	m := newPlayerModel(testPlaySession(), defaultPlaySpeed)

	if m.Cursor.Index() != 0 {
		t.Fatalf("initial index = %d, want 0", m.Cursor.Index())
	}

	next, _ := m.Update(keyMsg(tea.KeyRight))
	m = next.(PlayerModel)
	if m.Cursor.Index() != 1 {
		t.Errorf("index after right = %d, want 1", m.Cursor.Index())
	}

	next, _ = m.Update(keyMsg(tea.KeyLeft))
	m = next.(PlayerModel)
	if m.Cursor.Index() != 0 {
		t.Errorf("index after left = %d, want 0", m.Cursor.Index())
	}

	next, _ = m.Update(keyMsg(tea.KeyEnd))
	m = next.(PlayerModel)
	if !m.Cursor.AtEnd() {
		t.Error("end key should jump to the last frame")
	}

	// Stepping past the end stays clamped.
	next, _ = m.Update(keyMsg(tea.KeyRight))
	m = next.(PlayerModel)
	if m.Cursor.Index() != 2 {
		t.Errorf("index past end = %d, want 2", m.Cursor.Index())
	}

	next, _ = m.Update(keyMsg(tea.KeyHome))
	m = next.(PlayerModel)
	if !m.Cursor.AtStart() {
		t.Error("home key should rewind to the first frame")
	}
}

func TestPlayerModelAutoplay(t *testing.T) {
	m := newPlayerModel(testPlaySession(), defaultPlaySpeed)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(PlayerModel)
	if !m.Playing {
		t.Fatal("space should start autoplay")
	}
	if cmd == nil {
		t.Fatal("starting autoplay should schedule a tick")
	}

	// Ticks advance until the last frame, then playback stops.
	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(PlayerModel)
	if m.Cursor.Index() != 1 {
		t.Errorf("index after tick = %d, want 1", m.Cursor.Index())
	}

	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(PlayerModel)
	if m.Cursor.Index() != 2 {
		t.Errorf("index after second tick = %d, want 2", m.Cursor.Index())
	}
	if m.Playing {
		t.Error("autoplay should stop at the last frame")
	}

	// Space at the end restarts from the first frame.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(PlayerModel)
	if m.Cursor.Index() != 0 {
		t.Errorf("index after restart = %d, want 0", m.Cursor.Index())
	}
	if !m.Playing {
		t.Error("space at the end should restart playback")
	}
}

func TestPlayerModelView(t *testing.T) {
	m := newPlayerModel(testPlaySession(), defaultPlaySpeed)

	view := m.View()
	if !strings.Contains(view, "bubble sort") {
		t.Error("view should contain the session name")
	}
	if !strings.Contains(view, "initial") {
		t.Error("view should contain the frame description")
	}
	if !strings.Contains(view, "frame 1/3") {
		t.Error("view should report the frame position")
	}
}

func TestArrayLine(t *testing.T) {
	line := arrayLine(frame.ArraySnapshot{Values: []float64{3, 1, 4.5}})
	if !strings.Contains(line, "3") || !strings.Contains(line, "4.5") {
		t.Errorf("arrayLine = %q, missing values", line)
	}
	if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
		t.Errorf("arrayLine = %q, want bracketed", line)
	}
}

func TestStackLineTopFirst(t *testing.T) {
	line := stackLine(frame.StackSnapshot{Values: []float64{1, 2, 3}})
	if !strings.HasPrefix(line, "top → 3") {
		t.Errorf("stackLine = %q, want top-first order", line)
	}
}

func TestListLineFollowsPointers(t *testing.T) {
	s := frame.ListSnapshot{
		HeadID: intPtr(10),
		Nodes: []frame.ListNode{
			{ID: 20, Value: 2},
			{ID: 10, Value: 1, NextID: intPtr(20)},
		},
	}
	line := listLine(s)
	if !strings.Contains(line, "1 → 2 → ∅") {
		t.Errorf("listLine = %q, want head-ordered chain", line)
	}
}

func TestListLineCycleTerminates(t *testing.T) {
	a, b := 1, 2
	s := frame.ListSnapshot{
		Nodes: []frame.ListNode{
			{ID: 1, Value: 1, NextID: &b},
			{ID: 2, Value: 2, NextID: &a},
		},
	}
	line := listLine(s)
	if !strings.Contains(line, "∅") {
		t.Errorf("listLine = %q, cycle should still terminate", line)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := formatNumber(7); got != "7" {
		t.Errorf("formatNumber(7) = %q, want %q", got, "7")
	}
	if got := formatNumber(2.5); got != "2.5" {
		t.Errorf("formatNumber(2.5) = %q, want %q", got, "2.5")
	}
}
