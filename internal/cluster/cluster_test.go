package cluster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyhub-apps/pdftables-go/internal/geom"
)

func scalars(vs ...float64) []geom.Scalar {
	out := make([]geom.Scalar, len(vs))
	for i, v := range vs {
		out[i] = geom.Scalar(v)
	}
	return out
}

func toFloats(groups [][]geom.Scalar) [][]float64 {
	out := make([][]float64, len(groups))
	for i, g := range groups {
		row := make([]float64, len(g))
		for j, v := range g {
			row[j] = v.Float64()
		}
		out[i] = row
	}
	return out
}

// spec.md §8, seed scenario 1.
func TestCluster_SeedScenarios(t *testing.T) {
	got := Cluster(scalars(1, 2, 3, 4), geom.MustTolerance(0))
	assert.Equal(t, [][]float64{{1}, {2}, {3}, {4}}, toFloats(got))

	got = Cluster(scalars(1, 2, 3, 4), geom.MustTolerance(1))
	assert.Equal(t, [][]float64{{1, 2, 3, 4}}, toFloats(got))

	got = Cluster(scalars(1, 2, 5, 6), geom.MustTolerance(1))
	assert.Equal(t, [][]float64{{1, 2}, {5, 6}}, toFloats(got))
}

func TestCluster_Empty(t *testing.T) {
	assert.Nil(t, Cluster(nil, geom.MustTolerance(1)))
}

// spec.md §8: order independence — any permutation of input values yields
// the same partition of values.
func TestCluster_OrderIndependence(t *testing.T) {
	base := scalars(1, 2, 5, 6, 6.5, 20)
	want := Cluster(base, geom.MustTolerance(1))

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		perm := make([]geom.Scalar, len(base))
		copy(perm, base)
		r.Shuffle(len(perm), func(a, b int) { perm[a], perm[b] = perm[b], perm[a] })
		got := Cluster(perm, geom.MustTolerance(1))
		assert.Equal(t, want, got)
	}
}

func TestClusterBy_GroupsByKeyPreservingInputOrder(t *testing.T) {
	type item struct {
		name string
		pos  geom.Scalar
	}
	items := []item{
		{"b", 5},
		{"a", 1},
		{"c", 5.5},
		{"d", 20},
	}

	groups := ClusterBy(items, func(i item) geom.Scalar { return i.pos }, geom.MustTolerance(1))

	assert.Len(t, groups, 2)
	assert.Equal(t, []item{{"a", 1}}, groups[0])
	assert.Equal(t, []item{{"b", 5}, {"c", 5.5}}, groups[1])
}

func TestClusterBy_DuplicateKeysShareCluster(t *testing.T) {
	type item struct{ pos geom.Scalar }
	items := []item{{1}, {1}, {1}}
	groups := ClusterBy(items, func(i item) geom.Scalar { return i.pos }, geom.MustTolerance(0))
	assert.Len(t, groups, 1)
	assert.Len(t, groups[0], 3)
}

func TestClusterBy_Empty(t *testing.T) {
	type item struct{ pos geom.Scalar }
	assert.Nil(t, ClusterBy([]item{}, func(i item) geom.Scalar { return i.pos }, geom.MustTolerance(1)))
}
