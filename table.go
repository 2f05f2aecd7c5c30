package pdftables

import (
	"errors"

	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/serialize"
	"github.com/pyhub-apps/pdftables-go/internal/tablefinder"
)

// ErrTextNotExtracted is returned by a Table's serializer when the table
// was produced with extractText false — spec.md §7's TextNotExtracted.
var ErrTextNotExtracted = errors.New("pdftables: text not extracted for this table")

// BBox is an axis-aligned rectangle in page coordinates (top-left origin,
// y grows downward).
type BBox struct {
	X1, Y1, X2, Y2 float64
}

func bboxFromGeom(b geom.BBox) BBox {
	return BBox{X1: b.X1.Float64(), Y1: b.Y1.Float64(), X2: b.X2.Float64(), Y2: b.Y2.Float64()}
}

func geomBBoxFromRoot(b BBox) geom.BBox {
	return geom.NewBBox(geom.Scalar(b.X1), geom.Scalar(b.Y1), geom.Scalar(b.X2), geom.Scalar(b.Y2))
}

// Cell is one cell of a Table: its rectangle and, when the table was found
// with text extraction, its text.
type Cell struct {
	BBox BBox
	Text string
}

// Table is a found table: its cells, overall bbox, and the page it came
// from. Matches spec.md §6's Table::{cells, bbox, page_index,
// text_extracted, to_csv, to_markdown, to_html}.
type Table struct {
	Cells         []Cell
	BBox          BBox
	PageIndex     int
	textExtracted bool
}

func tableFromCore(t tablefinder.Table, pageIndex int, textExtracted bool) Table {
	cells := make([]Cell, len(t.Cells))
	for i, c := range t.Cells {
		cells[i] = Cell{BBox: bboxFromGeom(c.BBox), Text: c.Text}
	}
	return Table{
		Cells:         cells,
		BBox:          bboxFromGeom(t.BBox),
		PageIndex:     pageIndex,
		textExtracted: textExtracted,
	}
}

// rows arranges the table's cells into a dense grid, one row per distinct
// top coordinate, for serialization (spec.md §4.8's row/column
// enumeration).
func (t Table) rows() [][]string {
	if len(t.Cells) == 0 {
		return nil
	}

	rowTol := geom.MustTolerance(1.0)
	groups := clusterCellsByRow(t.Cells, rowTol)

	out := make([][]string, len(groups))
	for i, group := range groups {
		sorted := make([]Cell, len(group))
		copy(sorted, group)
		for a := 1; a < len(sorted); a++ {
			for b := a; b > 0 && sorted[b].BBox.X1 < sorted[b-1].BBox.X1; b-- {
				sorted[b], sorted[b-1] = sorted[b-1], sorted[b]
			}
		}
		row := make([]string, len(sorted))
		for j, c := range sorted {
			row[j] = c.Text
		}
		out[i] = row
	}
	return out
}

// clusterCellsByRow groups cells whose top (Y1) coordinates fall within
// tol of each other, sorted by cluster order — the same gap-tolerant
// grouping internal/cluster provides for geom.Scalar, applied here to the
// root package's plain-float Cell.
func clusterCellsByRow(cells []Cell, tol geom.Tolerance) [][]Cell {
	sorted := make([]Cell, len(cells))
	copy(sorted, cells)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].BBox.Y1 < sorted[j-1].BBox.Y1; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	var groups [][]Cell
	t := tol.Float64()
	for _, c := range sorted {
		if len(groups) == 0 {
			groups = append(groups, []Cell{c})
			continue
		}
		last := groups[len(groups)-1]
		if c.BBox.Y1 <= last[len(last)-1].BBox.Y1+t {
			groups[len(groups)-1] = append(last, c)
		} else {
			groups = append(groups, []Cell{c})
		}
	}
	return groups
}

// ToCSV serializes the table as CSV (spec.md §4.8).
func (t Table) ToCSV() (string, error) {
	if !t.textExtracted {
		return "", ErrTextNotExtracted
	}
	return serialize.CSV(t.rows())
}

// ToMarkdown serializes the table as a plain Markdown table.
func (t Table) ToMarkdown() (string, error) {
	if !t.textExtracted {
		return "", ErrTextNotExtracted
	}
	return serialize.Markdown(t.rows()), nil
}

// ToMarkdownAligned serializes the table as a Markdown table with columns
// padded to a common display width (East-Asian-width aware).
func (t Table) ToMarkdownAligned() (string, error) {
	if !t.textExtracted {
		return "", ErrTextNotExtracted
	}
	return serialize.MarkdownAligned(t.rows()), nil
}

// ToHTML serializes the table as an HTML <table>.
func (t Table) ToHTML() (string, error) {
	if !t.textExtracted {
		return "", ErrTextNotExtracted
	}
	return serialize.HTML(t.rows()), nil
}
