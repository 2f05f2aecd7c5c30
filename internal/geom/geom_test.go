package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScalar_RejectsNaN(t *testing.T) {
	_, err := NewScalar(math.NaN())
	require.Error(t, err)

	s, err := NewScalar(3.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, s.Float64())
}

func TestScalar_Less(t *testing.T) {
	assert.True(t, Scalar(1).Less(Scalar(2)))
	assert.False(t, Scalar(2).Less(Scalar(1)))
	assert.False(t, Scalar(2).Less(Scalar(2)))
}

func TestPoint_Less_Lexicographic(t *testing.T) {
	assert.True(t, Point{X: 1, Y: 5}.Less(Point{X: 2, Y: 0}))
	assert.True(t, Point{X: 1, Y: 0}.Less(Point{X: 1, Y: 5}))
	assert.False(t, Point{X: 1, Y: 5}.Less(Point{X: 1, Y: 5}))
}

func TestNewBBox_NormalizesCoordinateOrder(t *testing.T) {
	b := NewBBox(10, 10, 0, 0)
	assert.Equal(t, BBox{X1: 0, Y1: 0, X2: 10, Y2: 10}, b)
}

func TestBBox_WidthHeightCenter(t *testing.T) {
	b := NewBBox(0, 0, 10, 20)
	assert.Equal(t, Scalar(10), b.Width())
	assert.Equal(t, Scalar(20), b.Height())
	assert.Equal(t, Scalar(5), b.CenterX())
	assert.Equal(t, Scalar(10), b.CenterY())
}

// spec.md §3 / §4.8: character-to-cell assignment uses a half-open
// rectangle [x1, x2) x [y1, y2) on the assigned object's center.
func TestBBox_ContainsCenter_HalfOpen(t *testing.T) {
	cell := NewBBox(0, 0, 10, 10)

	inside := NewBBox(4, 4, 6, 6) // center (5,5)
	assert.True(t, cell.ContainsCenter(inside))

	onLeftTopEdge := NewBBox(-1, -1, 1, 1) // center (0,0)
	assert.True(t, cell.ContainsCenter(onLeftTopEdge))

	onRightEdge := NewBBox(9, 4, 11, 6) // center (10,5) -> x2 excluded
	assert.False(t, cell.ContainsCenter(onRightEdge))

	onBottomEdge := NewBBox(4, 9, 6, 11) // center (5,10) -> y2 excluded
	assert.False(t, cell.ContainsCenter(onBottomEdge))

	outside := NewBBox(20, 20, 22, 22)
	assert.False(t, cell.ContainsCenter(outside))
}

func TestBBox_UnionAndUnionAll(t *testing.T) {
	a := NewBBox(0, 0, 5, 5)
	b := NewBBox(3, 3, 10, 10)
	assert.Equal(t, NewBBox(0, 0, 10, 10), a.Union(b))

	union, ok := UnionAll([]BBox{a, b})
	require.True(t, ok)
	assert.Equal(t, NewBBox(0, 0, 10, 10), union)

	_, ok = UnionAll(nil)
	assert.False(t, ok)
}

func TestBBox_Corners(t *testing.T) {
	b := NewBBox(0, 0, 10, 20)
	got := b.Corners()
	want := [4]Point{{0, 0}, {0, 20}, {10, 0}, {10, 20}}
	assert.Equal(t, want, got)
}

// spec.md §8: settings negativity — constructing a Tolerance with any
// negative value fails.
func TestNewTolerance_RejectsNegative(t *testing.T) {
	_, err := NewTolerance(-0.001)
	require.Error(t, err)

	_, err = NewTolerance(math.NaN())
	require.Error(t, err)

	tol, err := NewTolerance(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tol.Float64())
}

func TestMustTolerance_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustTolerance(-1) })
	assert.NotPanics(t, func() { MustTolerance(3) })
}

func TestIsAxisAlignedRect(t *testing.T) {
	closedSquare := []Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	assert.True(t, IsAxisAlignedRect(closedSquare))

	notClosed := closedSquare[:4]
	assert.False(t, IsAxisAlignedRect(notClosed))

	diamond := []Point{
		{X: 5, Y: 0}, {X: 10, Y: 5}, {X: 5, Y: 10}, {X: 0, Y: 5}, {X: 5, Y: 0},
	}
	assert.False(t, IsAxisAlignedRect(diamond))
}
