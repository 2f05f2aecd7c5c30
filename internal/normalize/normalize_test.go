package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftables-go/internal/edges"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
)

func vEdge(x, y1, y2 float64) edges.Edge {
	return edges.Edge{Orientation: edges.Vertical, BBox: geom.NewBBox(geom.Scalar(x), geom.Scalar(y1), geom.Scalar(x), geom.Scalar(y2))}
}

func hEdge(x1, y, x2 float64) edges.Edge {
	return edges.Edge{Orientation: edges.Horizontal, BBox: geom.NewBBox(geom.Scalar(x1), geom.Scalar(y), geom.Scalar(x2), geom.Scalar(y))}
}

// spec.md §8, seed scenario 2: three vertical edges with x1 in {5,6,7},
// same y-range, tol 1 -> all three share x1 = 6.0 after snap.
func TestSnap_AveragesClusterToMean(t *testing.T) {
	in := []edges.Edge{vEdge(5, 0, 10), vEdge(6, 0, 10), vEdge(7, 0, 10)}
	s := Settings{SnapX: geom.MustTolerance(1), SnapY: geom.MustTolerance(1)}

	out := snap(in, s)
	require.Len(t, out, 3)
	for _, e := range out {
		assert.Equal(t, geom.Scalar(6), e.BBox.X1)
		assert.Equal(t, geom.Scalar(6), e.BBox.X2)
	}
}

// spec.md §8: snap idempotence — applying snap twice is a no-op the
// second time, since every edge in a cluster already shares the mean.
func TestSnap_Idempotent(t *testing.T) {
	in := []edges.Edge{vEdge(5, 0, 10), vEdge(6, 0, 10), vEdge(7, 0, 10)}
	s := Settings{SnapX: geom.MustTolerance(1), SnapY: geom.MustTolerance(1)}

	once := snap(in, s)
	twice := snap(once, s)

	assert.ElementsMatch(t, once, twice)
}

// spec.md §8: length invariance of snap — snap translates; every edge's
// length is preserved.
func TestSnap_PreservesLength(t *testing.T) {
	in := []edges.Edge{vEdge(5, 0, 10), vEdge(6, 2, 9), vEdge(7, -3, 4)}
	s := Settings{SnapX: geom.MustTolerance(1), SnapY: geom.MustTolerance(1)}

	out := snap(in, s)
	lengths := make([]geom.Scalar, len(out))
	for i, e := range out {
		lengths[i] = e.Length()
	}
	assert.ElementsMatch(t, []geom.Scalar{10, 7, 7}, lengths)
}

func TestJoin_MergesOverlappingAndAdjacentSpans(t *testing.T) {
	in := []edges.Edge{
		hEdge(0, 5, 10),
		hEdge(10, 5, 20), // touches previous exactly
		hEdge(25, 5, 30), // gap of 5, within tol
	}
	s := Settings{JoinX: geom.MustTolerance(5), JoinY: geom.MustTolerance(5)}

	out := join(in, s)
	require.Len(t, out, 1)
	assert.Equal(t, geom.Scalar(0), out[0].BBox.X1)
	assert.Equal(t, geom.Scalar(30), out[0].BBox.X2)
}

func TestJoin_DoesNotMergeBeyondTolerance(t *testing.T) {
	in := []edges.Edge{
		hEdge(0, 5, 10),
		hEdge(20, 5, 30), // gap of 10, exceeds tol of 1
	}
	s := Settings{JoinX: geom.MustTolerance(1), JoinY: geom.MustTolerance(1)}

	out := join(in, s)
	assert.Len(t, out, 2)
}

// spec.md §8: join monotonicity — a larger join tolerance never increases
// the number of output edges per group.
func TestJoin_Monotonic(t *testing.T) {
	in := []edges.Edge{hEdge(0, 5, 10), hEdge(12, 5, 18), hEdge(25, 5, 30)}

	small := join(in, Settings{JoinX: geom.MustTolerance(0), JoinY: geom.MustTolerance(0)})
	large := join(in, Settings{JoinX: geom.MustTolerance(100), JoinY: geom.MustTolerance(100)})

	assert.GreaterOrEqual(t, len(small), len(large))
}

func TestFilterByLength_DropsShortEdges(t *testing.T) {
	in := []edges.Edge{hEdge(0, 0, 1), hEdge(0, 0, 10)}
	out := filterByLength(in, 5)
	require.Len(t, out, 1)
	assert.Equal(t, geom.Scalar(10), out[0].Length())
}

func TestProcess_PrefilterSnapJoinPostfilter(t *testing.T) {
	s := DefaultSettings()
	in := []edges.Edge{
		hEdge(0, 5, 10),
		hEdge(10, 6, 21), // snaps onto the same Y, then joins with the first
		hEdge(0, 0, 0.5), // shorter than the prefilter length, dropped
	}
	out := Process(in, s)
	require.Len(t, out, 1)
	assert.Equal(t, geom.Scalar(0), out[0].BBox.X1)
	assert.Equal(t, geom.Scalar(21), out[0].BBox.X2)
}

func TestDefaultSettings_MatchesSpecDefaults(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 3.0, s.SnapX.Float64())
	assert.Equal(t, 3.0, s.SnapY.Float64())
	assert.Equal(t, 3.0, s.JoinX.Float64())
	assert.Equal(t, 3.0, s.JoinY.Float64())
	assert.Equal(t, geom.Scalar(3.0), s.EdgeMinLength)
	assert.Equal(t, geom.Scalar(1.0), s.EdgeMinLengthPrefilter)
}
