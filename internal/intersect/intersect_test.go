package intersect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyhub-apps/pdftables-go/internal/edges"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
)

func vEdge(x, y1, y2 float64) edges.Edge {
	return edges.Edge{Orientation: edges.Vertical, BBox: geom.NewBBox(geom.Scalar(x), geom.Scalar(y1), geom.Scalar(x), geom.Scalar(y2))}
}

func hEdge(x1, y, x2 float64) edges.Edge {
	return edges.Edge{Orientation: edges.Horizontal, BBox: geom.NewBBox(geom.Scalar(x1), geom.Scalar(y), geom.Scalar(x2), geom.Scalar(y))}
}

func TestCompute_FindsGridIntersections(t *testing.T) {
	horizontal := []edges.Edge{hEdge(0, 0, 20), hEdge(0, 10, 20)}
	vertical := []edges.Edge{vEdge(0, 0, 10), vEdge(10, 0, 10), vEdge(20, 0, 10)}

	idx := Compute(horizontal, vertical, geom.MustTolerance(0), geom.MustTolerance(0))

	for _, x := range []geom.Scalar{0, 10, 20} {
		for _, y := range []geom.Scalar{0, 10} {
			assert.True(t, idx.Exists(geom.Point{X: x, Y: y}), "expected intersection at (%v,%v)", x, y)
		}
	}
	assert.False(t, idx.Exists(geom.Point{X: 5, Y: 5}))
}

func TestCompute_RespectsTolerance(t *testing.T) {
	horizontal := []edges.Edge{hEdge(0, 0, 10)}
	vertical := []edges.Edge{vEdge(10.5, -5, 5)}

	noTol := Compute(horizontal, vertical, geom.MustTolerance(0), geom.MustTolerance(0))
	assert.False(t, noTol.Exists(geom.Point{X: 10.5, Y: 0}))

	withTol := Compute(horizontal, vertical, geom.MustTolerance(1), geom.MustTolerance(1))
	assert.True(t, withTol.Exists(geom.Point{X: 10.5, Y: 0}))
}

func TestIndex_XsYsAreSortedAndDeduplicated(t *testing.T) {
	horizontal := []edges.Edge{hEdge(0, 5, 10), hEdge(0, 5, 10), hEdge(0, 1, 10)}
	vertical := []edges.Edge{vEdge(3, 0, 10), vEdge(1, 0, 10)}

	idx := Compute(horizontal, vertical, geom.MustTolerance(0), geom.MustTolerance(0))

	assert.Equal(t, []geom.Scalar{1, 5}, idx.Ys())
	assert.Equal(t, []geom.Scalar{1, 3}, idx.Xs())
}

func TestHorizontalCovers_RequiresASingleEdgeSpanningBothPoints(t *testing.T) {
	horizontal := []edges.Edge{hEdge(0, 5, 10), hEdge(20, 5, 30)}
	idx := Compute(horizontal, nil, geom.MustTolerance(0), geom.MustTolerance(0))

	assert.True(t, idx.HorizontalCovers(5, 0, 10, geom.MustTolerance(0)))
	// 10 -> 20 is not covered by any single edge, even though both
	// endpoints individually lie on edges.
	assert.False(t, idx.HorizontalCovers(5, 10, 20, geom.MustTolerance(0)))
}

func TestVerticalCovers_RequiresASingleEdgeSpanningBothPoints(t *testing.T) {
	vertical := []edges.Edge{vEdge(5, 0, 10)}
	idx := Compute(nil, vertical, geom.MustTolerance(0), geom.MustTolerance(0))

	assert.True(t, idx.VerticalCovers(5, 0, 10, geom.MustTolerance(0)))
	assert.True(t, idx.VerticalCovers(5, 10, 0, geom.MustTolerance(0))) // order-independent
	assert.False(t, idx.VerticalCovers(5, 0, 11, geom.MustTolerance(0)))
}
