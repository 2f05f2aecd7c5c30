// Package geom defines the totally-ordered numeric types and basic shapes
// shared by every stage of the table-finding pipeline.
package geom

import (
	"fmt"
	"math"
)

// Scalar is a single-precision coordinate with a total order (NaN excluded),
// suitable as a map/set key. Every geometric coordinate in this module is a
// Scalar rather than a raw float32/float64 so ordering and equality stay
// deterministic across the pipeline.
type Scalar float32

// NewScalar constructs a Scalar, rejecting NaN.
func NewScalar(v float64) (Scalar, error) {
	if math.IsNaN(v) {
		return 0, fmt.Errorf("geom: NaN is not a valid Scalar")
	}
	return Scalar(v), nil
}

// Float64 returns the underlying value as a float64.
func (s Scalar) Float64() float64 { return float64(s) }

// Less reports whether s < o.
func (s Scalar) Less(o Scalar) bool { return s < o }

func minScalar(a, b Scalar) Scalar {
	if a < b {
		return a
	}
	return b
}

func maxScalar(a, b Scalar) Scalar {
	if a > b {
		return a
	}
	return b
}

// Point is a hashable, ordered 2D coordinate.
type Point struct {
	X, Y Scalar
}

// Less gives lexicographic order on (X, Y), matching the cell-construction
// scan order required by spec.md §4.5.
func (p Point) Less(o Point) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

// BBox is an axis-aligned rectangle with the invariant X1 <= X2 && Y1 <= Y2.
// Top-left origin: Y grows downward.
type BBox struct {
	X1, Y1, X2, Y2 Scalar
}

// NewBBox builds a BBox, normalizing coordinate order so the invariant
// always holds regardless of argument order.
func NewBBox(x1, y1, x2, y2 Scalar) BBox {
	return BBox{
		X1: minScalar(x1, x2),
		Y1: minScalar(y1, y2),
		X2: maxScalar(x1, x2),
		Y2: maxScalar(y1, y2),
	}
}

// Width returns X2 - X1.
func (b BBox) Width() Scalar { return b.X2 - b.X1 }

// Height returns Y2 - Y1.
func (b BBox) Height() Scalar { return b.Y2 - b.Y1 }

// CenterX returns the horizontal midpoint.
func (b BBox) CenterX() Scalar { return (b.X1 + b.X2) / 2 }

// CenterY returns the vertical midpoint.
func (b BBox) CenterY() Scalar { return (b.Y1 + b.Y2) / 2 }

// ContainsCenter reports whether the given bbox's center lies within this
// bbox under half-open bounds [X1, X2) x [Y1, Y2), as required for
// character-to-cell assignment (spec.md §3, §4.8).
func (b BBox) ContainsCenter(o BBox) bool {
	cx, cy := o.CenterX(), o.CenterY()
	return cx >= b.X1 && cx < b.X2 && cy >= b.Y1 && cy < b.Y2
}

// Union returns the smallest bbox containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		X1: minScalar(b.X1, o.X1),
		Y1: minScalar(b.Y1, o.Y1),
		X2: maxScalar(b.X2, o.X2),
		Y2: maxScalar(b.Y2, o.Y2),
	}
}

// UnionAll folds Union over a non-empty slice of bboxes.
func UnionAll(boxes []BBox) (BBox, bool) {
	if len(boxes) == 0 {
		return BBox{}, false
	}
	acc := boxes[0]
	for _, b := range boxes[1:] {
		acc = acc.Union(b)
	}
	return acc, true
}

// Corners returns the four corner points of b, used for corner-sharing
// table assembly (spec.md §4.6).
func (b BBox) Corners() [4]Point {
	return [4]Point{
		{X: b.X1, Y: b.Y1},
		{X: b.X1, Y: b.Y2},
		{X: b.X2, Y: b.Y1},
		{X: b.X2, Y: b.Y2},
	}
}

// Tolerance is a non-negative scalar bound used for every snap/join/
// intersection/length setting. Construction fails on negative input
// (spec.md §3, §7 InvalidConfig).
type Tolerance float32

// NewTolerance validates and constructs a Tolerance.
func NewTolerance(v float64) (Tolerance, error) {
	if v < 0 {
		return 0, fmt.Errorf("geom: tolerance must be non-negative, got %v", v)
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("geom: tolerance must not be NaN")
	}
	return Tolerance(v), nil
}

// MustTolerance is NewTolerance, panicking on invalid input. Reserved for
// package-level default constants where the value is a compile-time
// literal known to be valid.
func MustTolerance(v float64) Tolerance {
	t, err := NewTolerance(v)
	if err != nil {
		panic(err)
	}
	return t
}

// Float64 returns the underlying value.
func (t Tolerance) Float64() float64 { return float64(t) }

// Scalar converts the tolerance to a Scalar for arithmetic against
// coordinates.
func (t Tolerance) Scalar() Scalar { return Scalar(t) }

// IsAxisAlignedRect reports whether a closed 5-point path (first == last)
// traces an axis-aligned rectangle, per original_source/src/objects.rs::
// is_rect. The PDF collaborator layer (pkg/pdf) uses this to decide
// whether a stroked or filled path object should be emitted as a Rect
// or left as a Line.
func IsAxisAlignedRect(points []Point) bool {
	if len(points) != 5 || points[0] != points[4] {
		return false
	}
	p := points
	clockwise := p[0].X == p[1].X && p[1].Y == p[2].Y && p[2].X == p[3].X && p[3].Y == p[0].Y
	counter := p[0].Y == p[1].Y && p[1].X == p[2].X && p[2].Y == p[3].Y && p[3].X == p[0].X
	return clockwise || counter
}
