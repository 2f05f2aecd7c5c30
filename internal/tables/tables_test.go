package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftables-go/internal/cells"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
)

func cell(x1, y1, x2, y2 float64) cells.Cell {
	return cells.Cell{BBox: geom.NewBBox(geom.Scalar(x1), geom.Scalar(y1), geom.Scalar(x2), geom.Scalar(y2))}
}

// spec.md §8, seed scenario 4: four cells in a 2x2 grid form one table.
func TestAssemble_FourCellsFormOneTable(t *testing.T) {
	cellList := []cells.Cell{
		cell(0, 0, 10, 10),
		cell(10, 0, 20, 10),
		cell(0, 10, 10, 20),
		cell(10, 10, 20, 20),
	}

	got := Assemble(cellList, false)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Cells, 4)
	assert.Equal(t, geom.NewBBox(0, 0, 20, 20), got[0].BBox)
}

func TestAssemble_DisjointCellsFormSeparateTables(t *testing.T) {
	cellList := []cells.Cell{
		cell(0, 0, 10, 10),
		cell(100, 100, 110, 110),
	}

	got := Assemble(cellList, true)
	require.Len(t, got, 2)
	// Sorted by (min y1, min x1).
	assert.Equal(t, geom.NewBBox(0, 0, 10, 10), got[0].BBox)
	assert.Equal(t, geom.NewBBox(100, 100, 110, 110), got[1].BBox)
}

// spec.md §6 include_single_cell: singleton tables are dropped by default.
func TestAssemble_DropsSingletonsByDefault(t *testing.T) {
	cellList := []cells.Cell{cell(0, 0, 10, 10)}

	assert.Empty(t, Assemble(cellList, false))
	assert.Len(t, Assemble(cellList, true), 1)
}

func TestAssemble_Empty(t *testing.T) {
	assert.Empty(t, Assemble(nil, false))
}

// spec.md §8: table corner-closure — no two tables share a corner.
func TestAssemble_TablesDoNotShareCorners(t *testing.T) {
	cellList := []cells.Cell{
		cell(0, 0, 10, 10),
		cell(10, 0, 20, 10), // shares a corner with the first: same table
		cell(50, 50, 60, 60),
	}

	got := Assemble(cellList, true)
	require.Len(t, got, 2)

	corners := func(t Table) map[geom.Point]bool {
		set := make(map[geom.Point]bool)
		for _, c := range t.Cells {
			for _, p := range c.BBox.Corners() {
				set[p] = true
			}
		}
		return set
	}
	a, b := corners(got[0]), corners(got[1])
	for p := range a {
		assert.False(t, b[p], "tables share corner %+v", p)
	}
}

func TestAssemble_TransitiveChain(t *testing.T) {
	// Three cells in a row, each sharing corners only with its immediate
	// neighbor (the first and last share none), should all end up in the
	// same table via transitive closure.
	cellList := []cells.Cell{
		cell(0, 0, 10, 10),
		cell(10, 0, 20, 10),
		cell(20, 0, 30, 10),
	}
	got := Assemble(cellList, false)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Cells, 3)
}
