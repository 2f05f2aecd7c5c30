// Package cluster groups ordered scalar values whose consecutive gaps fall
// within a tolerance. It is the primitive that the scalar grouping stages
// (snap, line-grouping, word-line clustering) are built from; table assembly
// groups cells with its own union-find instead.
//
// Ported from original_source/src/clusters.rs (cluster_list / make_cluster_dict).
package cluster

import (
	"sort"

	"github.com/pyhub-apps/pdftables-go/internal/geom"
)

// Cluster groups xs into runs where each element is within tolerance of the
// previous (sorted) element. With tolerance 0, every distinct value is its
// own cluster. The input order does not matter: permutations of xs produce
// the same partition of values (spec.md §8, order independence).
func Cluster(xs []geom.Scalar, tolerance geom.Tolerance) [][]geom.Scalar {
	if len(xs) == 0 {
		return nil
	}

	sorted := make([]geom.Scalar, len(xs))
	copy(sorted, xs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	tol := tolerance.Scalar()

	groups := [][]geom.Scalar{{sorted[0]}}
	last := sorted[0]
	for _, x := range sorted[1:] {
		if x <= last+tol {
			groups[len(groups)-1] = append(groups[len(groups)-1], x)
		} else {
			groups = append(groups, []geom.Scalar{x})
		}
		last = x
	}
	return groups
}

// ClusterBy applies keyFn to each object to obtain a scalar, clusters those
// keys, then partitions the objects by the cluster index of their key.
// Objects with duplicate keys share a cluster. Output order: objects are
// grouped by ascending cluster index; within a cluster, objects retain
// their relative input order.
func ClusterBy[T any](objects []T, keyFn func(T) geom.Scalar, tolerance geom.Tolerance) [][]T {
	if len(objects) == 0 {
		return nil
	}

	keys := make([]geom.Scalar, len(objects))
	for i, obj := range objects {
		keys[i] = keyFn(obj)
	}

	clusterIndex := indexClusters(keys, tolerance)

	numClusters := 0
	for _, idx := range clusterIndex {
		if idx+1 > numClusters {
			numClusters = idx + 1
		}
	}

	groups := make([][]T, numClusters)
	for i, obj := range objects {
		idx := clusterIndex[keys[i]]
		groups[idx] = append(groups[idx], obj)
	}
	return groups
}

// indexClusters clusters the unique values of keys and returns a map from
// each distinct key value to its cluster index, mirroring
// clusters.rs::make_cluster_dict.
func indexClusters(keys []geom.Scalar, tolerance geom.Tolerance) map[geom.Scalar]int {
	seen := make(map[geom.Scalar]struct{}, len(keys))
	unique := make([]geom.Scalar, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			unique = append(unique, k)
		}
	}

	clusters := Cluster(unique, tolerance)

	result := make(map[geom.Scalar]int, len(unique))
	for i, group := range clusters {
		for _, v := range group {
			result[v] = i
		}
	}
	return result
}
