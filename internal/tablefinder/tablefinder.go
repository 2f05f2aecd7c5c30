// Package tablefinder orchestrates the full pipeline — edge derivation,
// normalization, intersection detection, cell construction, and table
// assembly — and exposes the four entry points spec.md §6 names:
// FindTables, FindAllCells, FindTablesFromCells, and GetEdges.
//
// Grounded on original_source/src/tables.rs::find_tables and
// TableFinder::get_edges for call order; find_all_cells and
// find_tables_from_cells (named but not bodied in spec.md's distillation)
// are modeled after tables.rs's own split between intersections_to_cells
// and cells_to_tables.
package tablefinder

import (
	"errors"
	"strings"

	"github.com/pyhub-apps/pdftables-go/internal/cells"
	"github.com/pyhub-apps/pdftables-go/internal/edges"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/intersect"
	"github.com/pyhub-apps/pdftables-go/internal/normalize"
	"github.com/pyhub-apps/pdftables-go/internal/pageobjects"
	"github.com/pyhub-apps/pdftables-go/internal/tables"
	"github.com/pyhub-apps/pdftables-go/internal/words"
)

// ErrTextNotExtracted is returned by FindTablesFromCells when the caller
// asks for cell text but supplied no page objects to pull characters from.
var ErrTextNotExtracted = errors.New("tablefinder: extractText requested but no page objects were provided")

// Settings configures every stage of the pipeline. DefaultSettings mirrors
// tables.rs's TfSettings::default (every tolerance 3.0, prefilter length
// 1.0, include_single_cell false).
type Settings struct {
	HorizontalStrategy, VerticalStrategy edges.Strategy

	SnapX, SnapY                           geom.Tolerance
	JoinX, JoinY                           geom.Tolerance
	EdgeMinLength, EdgeMinLengthPrefilter geom.Scalar
	IntersectionX, IntersectionY           geom.Tolerance
	MinWords                               edges.MinWords

	IncludeSingleCell bool

	Words words.Settings
}

// DefaultSettings returns the spec.md §6 documented defaults.
func DefaultSettings() Settings {
	t3 := geom.MustTolerance(3.0)
	return Settings{
		HorizontalStrategy: edges.LinesStrict,
		VerticalStrategy:   edges.LinesStrict,
		SnapX:              t3,
		SnapY:              t3,
		JoinX:              t3,
		JoinY:              t3,
		EdgeMinLength:          3.0,
		EdgeMinLengthPrefilter: 1.0,
		IntersectionX:          t3,
		IntersectionY:          t3,
		MinWords:               edges.DefaultMinWords(),
		IncludeSingleCell:      false,
		Words:                  words.DefaultSettings(),
	}
}

// TableCell is a finished cell: its rectangle, and optionally the text built
// from every character whose center falls inside it.
type TableCell struct {
	BBox geom.BBox
	Text string
}

// Table is a finished table: its constituent cells and their overall bbox.
type Table struct {
	Cells []TableCell
	BBox  geom.BBox
}

// GetEdges runs edge derivation and normalization only, returning the
// cleaned horizontal and vertical edge sets. Exposed for debug tooling
// (cmd/debug_tables), mirroring TableFinder::get_edges.
func GetEdges(objs pageobjects.PageObjects, s Settings) (horizontal, vertical []edges.Edge) {
	rawH, rawV := edges.Derive(objs, s.HorizontalStrategy, s.VerticalStrategy, s.SnapX, s.SnapY, s.Words, s.MinWords)

	normSettings := normalize.Settings{
		SnapX: s.SnapX, SnapY: s.SnapY,
		JoinX: s.JoinX, JoinY: s.JoinY,
		EdgeMinLength:          s.EdgeMinLength,
		EdgeMinLengthPrefilter: s.EdgeMinLengthPrefilter,
	}
	horizontal = normalize.Process(rawH, normSettings)
	vertical = normalize.Process(rawV, normSettings)
	return
}

// FindAllCells runs the pipeline through cell construction and returns
// every minimal cell found, without grouping them into tables.
func FindAllCells(objs pageobjects.PageObjects, s Settings) []cells.Cell {
	horizontal, vertical := GetEdges(objs, s)
	idx := intersect.Compute(horizontal, vertical, s.IntersectionX, s.IntersectionY)
	return cells.Find(idx, s.IntersectionX, s.IntersectionY)
}

// FindTablesFromCells groups a caller-supplied cell list into tables by
// corner-sharing connectivity. When extractText is true, objs must be
// non-nil so cell text can be assigned from its characters.
func FindTablesFromCells(cellList []cells.Cell, extractText bool, objs *pageobjects.PageObjects, s Settings) ([]Table, error) {
	if extractText && objs == nil {
		return nil, ErrTextNotExtracted
	}

	assembled := tables.Assemble(cellList, s.IncludeSingleCell)

	out := make([]Table, len(assembled))
	for i, t := range assembled {
		tableCells := make([]TableCell, len(t.Cells))
		for j, c := range t.Cells {
			tableCells[j] = TableCell{BBox: c.BBox}
			if extractText {
				tableCells[j].Text = textInCell(c.BBox, objs.Chars, s.Words)
			}
		}
		out[i] = Table{Cells: tableCells, BBox: t.BBox}
	}
	return out, nil
}

// FindTables runs the complete pipeline: edges, normalization,
// intersections, cells, and table assembly, optionally filling in cell
// text. Grounded on tables.rs::find_tables.
func FindTables(objs pageobjects.PageObjects, s Settings, extractText bool) ([]Table, error) {
	cellList := FindAllCells(objs, s)
	var objsPtr *pageobjects.PageObjects
	if extractText {
		objsPtr = &objs
	}
	return FindTablesFromCells(cellList, extractText, objsPtr, s)
}

// textInCell implements spec.md §4.8's cell text assignment: select the
// characters whose center lies in bbox's half-open rectangle, run word
// extraction over just those characters with KeepBlank forced true (so
// intra-cell spacing survives as literal characters inside word text),
// then concatenate the resulting words in reading order. "\r\n" and "\r"
// are normalized to "\n", and the result is trimmed of leading/trailing
// whitespace.
func textInCell(bbox geom.BBox, chars []pageobjects.Char, wordSettings words.Settings) string {
	var matched []pageobjects.Char
	for _, c := range chars {
		if bbox.ContainsCenter(c.BBox) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return ""
	}

	cellSettings := wordSettings
	cellSettings.KeepBlank = true
	ws := words.Extract(matched, cellSettings)

	var sb strings.Builder
	for _, w := range ws {
		sb.WriteString(w.Text)
	}

	text := sb.String()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}
