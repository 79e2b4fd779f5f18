package playback

import "testing"

func TestNewCursor(t *testing.T) {
	c := NewCursor(5)
	if c.Index() != 0 {
		t.Errorf("Index() = %d, want 0", c.Index())
	}
	if c.Total() != 5 {
		t.Errorf("Total() = %d, want 5", c.Total())
	}
	if !c.AtStart() {
		t.Error("new cursor should be at start")
	}
	if c.AtEnd() {
		t.Error("new cursor over 5 frames should not be at end")
	}
}

func TestCursorStepping(t *testing.T) {
	c := NewCursor(3)

	if got := c.Next(); got != 1 {
		t.Errorf("Next() = %d, want 1", got)
	}
	if got := c.Next(); got != 2 {
		t.Errorf("Next() = %d, want 2", got)
	}
	if !c.AtEnd() {
		t.Error("cursor should be at end")
	}

	// Clamped at the end.
	if got := c.Next(); got != 2 {
		t.Errorf("Next() past end = %d, want 2", got)
	}

	if got := c.Prev(); got != 1 {
		t.Errorf("Prev() = %d, want 1", got)
	}
	c.Prev()
	// Clamped at the start.
	if got := c.Prev(); got != 0 {
		t.Errorf("Prev() past start = %d, want 0", got)
	}
}

func TestCursorSeekClamps(t *testing.T) {
	c := NewCursor(4)

	tests := []struct {
		seek int
		want int
	}{
		{2, 2},
		{-1, 0},
		{99, 3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := c.Seek(tt.seek); got != tt.want {
			t.Errorf("Seek(%d) = %d, want %d", tt.seek, got, tt.want)
		}
	}
}

func TestCursorFirstLast(t *testing.T) {
	c := NewCursor(10)
	if got := c.Last(); got != 9 {
		t.Errorf("Last() = %d, want 9", got)
	}
	if got := c.First(); got != 0 {
		t.Errorf("First() = %d, want 0", got)
	}
}

func TestCursorEmpty(t *testing.T) {
	c := NewCursor(0)
	if c.Index() != 0 {
		t.Errorf("Index() = %d, want 0", c.Index())
	}
	if !c.AtEnd() {
		t.Error("empty cursor reports AtEnd")
	}
	if got := c.Next(); got != 0 {
		t.Errorf("Next() on empty = %d, want 0", got)
	}
	if got := c.Seek(5); got != 0 {
		t.Errorf("Seek(5) on empty = %d, want 0", got)
	}
}

func TestCursorNegativeTotal(t *testing.T) {
	c := NewCursor(-3)
	if c.Total() != 0 {
		t.Errorf("Total() = %d, want 0", c.Total())
	}
}

func TestCursorResize(t *testing.T) {
	c := NewCursor(10)
	c.Seek(8)

	// Shrinking re-clamps the index.
	c.Resize(5)
	if c.Index() != 4 {
		t.Errorf("Index() after shrink = %d, want 4", c.Index())
	}

	// Growing keeps the position.
	c.Resize(20)
	if c.Index() != 4 {
		t.Errorf("Index() after grow = %d, want 4", c.Index())
	}
	if c.Total() != 20 {
		t.Errorf("Total() = %d, want 20", c.Total())
	}

	c.Resize(0)
	if c.Index() != 0 {
		t.Errorf("Index() after resize to zero = %d, want 0", c.Index())
	}
}
