// Package tables assembles cells into tables by corner-sharing
// connectivity: any two cells that share a corner point belong to the same
// table. Grounded on original_source/src/tables.rs::cells_to_tables; the
// same grouping is computed here with a union-find over cell indices keyed
// by shared corners, followed by a final sort on (min y, min x) and a
// single-cell filter.
package tables

import (
	"sort"

	"github.com/pyhub-apps/pdftables-go/internal/cells"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
)

// Table is a maximal set of cells connected, directly or transitively, by
// shared corners.
type Table struct {
	Cells []cells.Cell
	BBox  geom.BBox
}

// Assemble groups cells into tables. When includeSingleCell is false
// (the default, matching tables.rs::cells_to_tables), tables consisting of
// exactly one cell are dropped.
func Assemble(cellList []cells.Cell, includeSingleCell bool) []Table {
	if len(cellList) == 0 {
		return nil
	}

	uf := newUnionFind(len(cellList))

	byCorner := make(map[geom.Point][]int)
	for i, c := range cellList {
		for _, p := range c.BBox.Corners() {
			byCorner[p] = append(byCorner[p], i)
		}
	}
	for _, group := range byCorner {
		for i := 1; i < len(group); i++ {
			uf.union(group[0], group[i])
		}
	}

	groups := make(map[int][]int)
	for i := range cellList {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	var out []Table
	for _, idxs := range groups {
		if len(idxs) <= 1 && !includeSingleCell {
			continue
		}
		tableCells := make([]cells.Cell, len(idxs))
		boxes := make([]geom.BBox, len(idxs))
		for i, idx := range idxs {
			tableCells[i] = cellList[idx]
			boxes[i] = cellList[idx].BBox
		}
		bbox, _ := geom.UnionAll(boxes)
		out = append(out, Table{Cells: tableCells, BBox: bbox})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].BBox.Y1 != out[j].BBox.Y1 {
			return out[i].BBox.Y1 < out[j].BBox.Y1
		}
		return out[i].BBox.X1 < out[j].BBox.X1
	})
	return out
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}
