// Package playback tracks the current position within a frame sequence.
//
// The cursor is owned and mutated by a playback controller (the TUI player,
// the serve API, or any external caller); the rendering pipeline only ever
// reads it to pick which frame to render. All movement is clamped to the
// valid range, so an out-of-range seek can never produce an undefined render.
package playback

// Cursor is a clamped index into an ordered frame sequence.
//
// The zero value is a cursor over an empty sequence; Index reports 0 and
// every movement is a no-op until the total is set.
type Cursor struct {
	index int
	total int
}

// NewCursor creates a cursor over total frames, positioned at index 0.
// A negative total is treated as zero.
func NewCursor(total int) *Cursor {
	if total < 0 {
		total = 0
	}
	return &Cursor{total: total}
}

// Index returns the current frame index. Always within [0, Total()-1] for a
// non-empty sequence, 0 otherwise.
func (c *Cursor) Index() int { return c.index }

// Total returns the number of frames in the sequence.
func (c *Cursor) Total() int { return c.total }

// AtStart reports whether the cursor is at the first frame.
func (c *Cursor) AtStart() bool { return c.index == 0 }

// AtEnd reports whether the cursor is at the last frame (or the sequence is
// empty).
func (c *Cursor) AtEnd() bool { return c.index >= c.total-1 }

// Seek moves the cursor to i, clamped to [0, Total()-1]. It returns the
// resulting index.
func (c *Cursor) Seek(i int) int {
	c.index = clamp(i, c.total)
	return c.index
}

// Next advances the cursor by one frame, clamped at the end.
func (c *Cursor) Next() int { return c.Seek(c.index + 1) }

// Prev moves the cursor back one frame, clamped at the start.
func (c *Cursor) Prev() int { return c.Seek(c.index - 1) }

// First rewinds to the initial frame.
func (c *Cursor) First() int { return c.Seek(0) }

// Last jumps to the final frame.
func (c *Cursor) Last() int { return c.Seek(c.total - 1) }

// Resize updates the total frame count, re-clamping the current index. Used
// when a new session is loaded into an existing player.
func (c *Cursor) Resize(total int) {
	if total < 0 {
		total = 0
	}
	c.total = total
	c.index = clamp(c.index, total)
}

func clamp(i, total int) int {
	if total <= 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i > total-1 {
		return total - 1
	}
	return i
}
