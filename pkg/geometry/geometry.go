// Package geometry derives visual layout metrics from raw frame data.
//
// Two independent computations live here: bar heights proportional to scalar
// magnitudes (array-like structures), and canvas bounds enclosing positioned
// nodes (trees, graphs). Both are pure functions of the current snapshot —
// frame-to-frame structure identity is not guaranteed, so nothing is cached.
package geometry

import "math"

const (
	// Scale is the bar height in pixels assigned to the maximum-magnitude
	// value in a snapshot.
	Scale = 150.0

	// Margin is the padding added beyond the furthest node coordinate when
	// computing canvas bounds.
	Margin = 60.0
)

// Point is a 2D node position.
type Point struct {
	X float64
	Y float64
}

// MaxAbs returns the maximum absolute value in values, floored at 1 so that
// all-zero input never produces a zero divisor.
func MaxAbs(values []float64) float64 {
	maxAbs := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs < 1 {
		return 1
	}
	return maxAbs
}

// BarHeights maps each value to a bar height proportional to its magnitude:
// |v| / maxAbs * Scale. The maximum-magnitude element gets exactly Scale;
// all-zero input yields zero heights. Results are always finite and
// non-negative.
func BarHeights(values []float64) []float64 {
	maxAbs := MaxAbs(values)
	heights := make([]float64, len(values))
	for i, v := range values {
		heights[i] = math.Abs(v) / maxAbs * Scale
	}
	return heights
}

// Bounds computes a canvas size enclosing all points with Margin padding:
// width = max(x) + Margin, height = max(y) + Margin.
//
// Structures with no nodes must be filtered out before layout; Bounds still
// degrades to a Margin-sized canvas for an empty slice rather than producing
// a degenerate zero bound. Negative coordinates are clamped so bounds stay
// finite and at least Margin.
func Bounds(points []Point) (width, height float64) {
	var maxX, maxY float64
	for _, p := range points {
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return maxX + Margin, maxY + Margin
}
