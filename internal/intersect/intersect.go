// Package intersect finds the points where normalized horizontal and
// vertical edges cross, and answers the edge-connectivity queries that
// internal/cells needs to grow those points into minimal rectangles.
//
// Grounded on original_source/src/tables.rs::edges_to_intersections, with
// the documented inter1/inter1 typo in intersections_to_cells's
// edge-connectivity check deliberately NOT reproduced: both axis branches
// here compare the opposing edge set symmetrically, and each orientation
// key in an intersection record holds only edges of that orientation
// (the original's second bug, also called out in spec.md §9).
package intersect

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/pyhub-apps/pdftables-go/internal/edges"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
)

// Index answers point-exists and span-coverage queries over one page's
// normalized edges.
type Index struct {
	horizontal map[geom.Scalar][][2]geom.Scalar // keyed by Y, spans are [x1,x2]
	vertical   map[geom.Scalar][][2]geom.Scalar // keyed by X, spans are [y1,y2]
	exists     map[geom.Point]bool
	xs, ys     []geom.Scalar
}

// Compute builds an Index from a page's normalized horizontal and vertical
// edges. Grounded on tables.rs::edges_to_intersections's exact vertex test:
//
//	v.Y1 <= h.Y1+tolY && v.Y2 >= h.Y1-tolY && v.X1 >= h.X1-tolX && v.X1 <= h.X2+tolX
//
// with the vertex placed at (v.X1, h.Y1).
func Compute(horizontal, vertical []edges.Edge, tolX, tolY geom.Tolerance) *Index {
	idx := &Index{
		horizontal: groupByCross(horizontal, true),
		vertical:   groupByCross(vertical, false),
		exists:     make(map[geom.Point]bool),
	}

	tx, ty := tolX.Scalar(), tolY.Scalar()
	for y, hSpans := range idx.horizontal {
		for x, vSpans := range idx.vertical {
			for _, h := range hSpans {
				for _, v := range vSpans {
					if v[0] <= y+ty && v[1] >= y-ty && x >= h[0]-tx && x <= h[1]+tx {
						idx.exists[geom.Point{X: x, Y: y}] = true
					}
				}
			}
		}
	}

	idx.xs = sortedKeys(idx.vertical)
	idx.ys = sortedKeys(idx.horizontal)
	return idx
}

func groupByCross(in []edges.Edge, horizontal bool) map[geom.Scalar][][2]geom.Scalar {
	out := make(map[geom.Scalar][][2]geom.Scalar)
	for _, e := range in {
		var cross, lo, hi geom.Scalar
		if horizontal {
			cross, lo, hi = e.BBox.Y1, e.BBox.X1, e.BBox.X2
		} else {
			cross, lo, hi = e.BBox.X1, e.BBox.Y1, e.BBox.Y2
		}
		out[cross] = append(out[cross], [2]geom.Scalar{lo, hi})
	}
	for k := range out {
		slices.SortFunc(out[k], func(a, b [2]geom.Scalar) int {
			switch {
			case a[0] < b[0]:
				return -1
			case a[0] > b[0]:
				return 1
			default:
				return 0
			}
		})
	}
	return out
}

func sortedKeys(m map[geom.Scalar][][2]geom.Scalar) []geom.Scalar {
	keys := maps.Keys(m)
	slices.SortFunc(keys, func(a, b geom.Scalar) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
	return keys
}

// Xs returns every distinct vertical-edge X coordinate, ascending.
func (idx *Index) Xs() []geom.Scalar { return idx.xs }

// Ys returns every distinct horizontal-edge Y coordinate, ascending.
func (idx *Index) Ys() []geom.Scalar { return idx.ys }

// Exists reports whether an intersection vertex exists at p.
func (idx *Index) Exists(p geom.Point) bool { return idx.exists[p] }

// HorizontalCovers reports whether a single horizontal edge at y spans
// [xa, xb] (in either order) within the intersection X tolerance implicit
// in Compute's caller-chosen tolX — callers pass the same tolX used there.
func (idx *Index) HorizontalCovers(y, xa, xb geom.Scalar, tolX geom.Tolerance) bool {
	return axisCovers(idx.horizontal[y], xa, xb, tolX)
}

// VerticalCovers is HorizontalCovers's vertical-edge counterpart.
func (idx *Index) VerticalCovers(x, ya, yb geom.Scalar, tolY geom.Tolerance) bool {
	return axisCovers(idx.vertical[x], ya, yb, tolY)
}

func axisCovers(group [][2]geom.Scalar, a, b geom.Scalar, tol geom.Tolerance) bool {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	t := tol.Scalar()
	for _, span := range group {
		if span[0] <= lo+t && span[1] >= hi-t {
			return true
		}
	}
	return false
}
