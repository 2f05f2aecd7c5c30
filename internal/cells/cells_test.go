package cells

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyhub-apps/pdftables-go/internal/edges"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/intersect"
)

func vEdge(x, y1, y2 float64) edges.Edge {
	return edges.Edge{Orientation: edges.Vertical, BBox: geom.NewBBox(geom.Scalar(x), geom.Scalar(y1), geom.Scalar(x), geom.Scalar(y2))}
}

func hEdge(x1, y, x2 float64) edges.Edge {
	return edges.Edge{Orientation: edges.Horizontal, BBox: geom.NewBBox(geom.Scalar(x1), geom.Scalar(y), geom.Scalar(x2), geom.Scalar(y))}
}

func bboxesOf(cs []Cell) []geom.BBox {
	out := make([]geom.BBox, len(cs))
	for i, c := range cs {
		out[i] = c.BBox
	}
	return out
}

// A 2x2 grid of a full outer border plus a cross in the middle yields
// exactly four minimal cells (spec.md §8, seed scenario 4's grid).
func TestFind_2x2Grid(t *testing.T) {
	horizontal := []edges.Edge{hEdge(0, 0, 20), hEdge(0, 10, 20), hEdge(0, 20, 20)}
	vertical := []edges.Edge{vEdge(0, 0, 20), vEdge(10, 0, 20), vEdge(20, 0, 20)}

	idx := intersect.Compute(horizontal, vertical, geom.MustTolerance(0), geom.MustTolerance(0))
	got := Find(idx, geom.MustTolerance(0), geom.MustTolerance(0))

	want := []geom.BBox{
		geom.NewBBox(0, 0, 10, 10),
		geom.NewBBox(10, 0, 20, 10),
		geom.NewBBox(0, 10, 10, 20),
		geom.NewBBox(10, 10, 20, 20),
	}
	assert.ElementsMatch(t, want, bboxesOf(got))
}

// Every output cell's four corners must be intersection points, and the
// cell's sides must be covered by edges shared with its neighbors
// (spec.md §8: cell invariants).
func TestFind_OnlyEmitsEdgeConnectedCells(t *testing.T) {
	// A full square border with a middle horizontal bar that stops at x=8,
	// short of the right border, and no middle vertical bar.
	horizontal := []edges.Edge{hEdge(0, 0, 20), hEdge(0, 20, 20), hEdge(0, 10, 8)}
	vertical := []edges.Edge{vEdge(0, 0, 20), vEdge(20, 0, 20)}

	idx := intersect.Compute(horizontal, vertical, geom.MustTolerance(0), geom.MustTolerance(0))
	got := Find(idx, geom.MustTolerance(0), geom.MustTolerance(0))

	// There is no vertical edge at x=10 and the bar never reaches x=20, so
	// (10,10) and (20,10) are not intersections and no cell may use them as
	// corners; whatever cells are found must have all four corners at
	// intersections.
	for _, c := range got {
		assert.True(t, idx.Exists(geom.Point{X: c.BBox.X1, Y: c.BBox.Y1}))
		assert.True(t, idx.Exists(geom.Point{X: c.BBox.X2, Y: c.BBox.Y1}))
		assert.True(t, idx.Exists(geom.Point{X: c.BBox.X1, Y: c.BBox.Y2}))
		assert.True(t, idx.Exists(geom.Point{X: c.BBox.X2, Y: c.BBox.Y2}))
	}
}

func TestFind_NoEdgesYieldsNoCells(t *testing.T) {
	idx := intersect.Compute(nil, nil, geom.MustTolerance(0), geom.MustTolerance(0))
	assert.Empty(t, Find(idx, geom.MustTolerance(0), geom.MustTolerance(0)))
}

// A nearest right/lower neighbor pair that fails to close must not stop
// the search: a larger smallest-cell anchored at the same top-left corner
// can still exist using a farther neighbor on one axis. Vertices exist at
// (0,0),(10,0),(20,0),(0,10),(0,20),(20,20) only — (10,10), (20,10), and
// (10,20) are never intersections because the middle horizontal stub and
// the middle vertical stub are both too short to reach them. The nearest
// right neighbor of (0,0) is (10,0) and the nearest lower neighbor is
// (0,10), whose corner (10,10) doesn't close; only the farther pair
// (20,0)/(0,20), closing at (20,20), yields a valid cell.
func TestFind_FallsBackPastNonClosingNearestNeighbors(t *testing.T) {
	horizontal := []edges.Edge{
		hEdge(0, 0, 20),  // y=0, full width: gives (0,0),(10,0),(20,0)
		hEdge(0, 20, 20), // y=20, full width: gives (0,20),(20,20)
		hEdge(0, 10, 5),  // y=10, stub stopping short of x=10: gives (0,10) only
	}
	vertical := []edges.Edge{
		vEdge(0, 0, 20),  // x=0, full height: gives (0,0),(0,10),(0,20)
		vEdge(20, 0, 20), // x=20, full height: gives (20,0),(20,20)
		vEdge(10, 0, 2),  // x=10, stub stopping short of y=10: gives (10,0) only
	}

	idx := intersect.Compute(horizontal, vertical, geom.MustTolerance(0), geom.MustTolerance(0))
	got := Find(idx, geom.MustTolerance(0), geom.MustTolerance(0))

	assert.False(t, idx.Exists(geom.Point{X: 10, Y: 10}), "precondition: (10,10) must not be an intersection")
	assert.Contains(t, bboxesOf(got), geom.NewBBox(0, 0, 20, 20))
}

func TestFind_SingleRectangle(t *testing.T) {
	horizontal := []edges.Edge{hEdge(0, 0, 10), hEdge(0, 10, 10)}
	vertical := []edges.Edge{vEdge(0, 0, 10), vEdge(10, 0, 10)}

	idx := intersect.Compute(horizontal, vertical, geom.MustTolerance(0), geom.MustTolerance(0))
	got := Find(idx, geom.MustTolerance(0), geom.MustTolerance(0))

	assert.Equal(t, []geom.BBox{geom.NewBBox(0, 0, 10, 10)}, bboxesOf(got))
}
