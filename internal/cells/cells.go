// Package cells grows an intersect.Index's vertices into the smallest
// possible rectangular cells, scanning corners in lexicographic (x, y)
// order so every cell found is the smallest one anchored at its top-left
// corner.
//
// Grounded on original_source/src/tables.rs::intersections_to_cells and
// ::find_smallest_cell.
package cells

import (
	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/intersect"
)

// Cell is a minimal rectangle bounded on all four sides by edge segments.
type Cell struct {
	BBox geom.BBox
}

// Find scans every intersection vertex in lexicographic order and, for
// each, tries to grow the smallest cell with that vertex as its top-left
// corner: collect every vertex below p1 reachable by a covering vertical
// edge and every vertex to the right of p1 reachable by a covering
// horizontal edge, then try every (lower, right) pair — outer loop over
// lower candidates, inner loop over right candidates, matching
// find_smallest_cell's nested v_after/h_after search — until one pair's
// fourth corner closes into a valid cell. This can accept a right/lower
// neighbor that is not the nearest one in its own axis when the nearer
// candidate fails to close, so a larger valid cell is not silently
// dropped in favor of emitting nothing.
func Find(idx *intersect.Index, tolX, tolY geom.Tolerance) []Cell {
	var out []Cell
pointLoop:
	for _, p := range candidatePoints(idx) {
		rightCandidates := coveredAlong(idx.Xs(), p.X, func(x geom.Scalar) bool {
			return idx.Exists(geom.Point{X: x, Y: p.Y}) && idx.HorizontalCovers(p.Y, p.X, x, tolX)
		})
		if len(rightCandidates) == 0 {
			continue
		}
		lowerCandidates := coveredAlong(idx.Ys(), p.Y, func(y geom.Scalar) bool {
			return idx.Exists(geom.Point{X: p.X, Y: y}) && idx.VerticalCovers(p.X, p.Y, y, tolY)
		})
		if len(lowerCandidates) == 0 {
			continue
		}

		for _, bottomY := range lowerCandidates {
			for _, rightX := range rightCandidates {
				corner := geom.Point{X: rightX, Y: bottomY}
				if !idx.Exists(corner) {
					continue
				}
				if !idx.VerticalCovers(rightX, p.Y, bottomY, tolY) {
					continue
				}
				if !idx.HorizontalCovers(bottomY, p.X, rightX, tolX) {
					continue
				}

				out = append(out, Cell{BBox: geom.NewBBox(p.X, p.Y, rightX, bottomY)})
				continue pointLoop
			}
		}
	}
	return out
}

// candidatePoints returns every intersection vertex in lexicographic
// (x, y) order — the smallest-cell-first scan order.
func candidatePoints(idx *intersect.Index) []geom.Point {
	var out []geom.Point
	for _, x := range idx.Xs() {
		for _, y := range idx.Ys() {
			p := geom.Point{X: x, Y: y}
			if idx.Exists(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// coveredAlong returns every value in xs strictly greater than after for
// which pred holds, in ascending order. xs is assumed sorted ascending.
func coveredAlong(xs []geom.Scalar, after geom.Scalar, pred func(geom.Scalar) bool) []geom.Scalar {
	var out []geom.Scalar
	for _, x := range xs {
		if x <= after {
			continue
		}
		if pred(x) {
			out = append(out, x)
		}
	}
	return out
}
