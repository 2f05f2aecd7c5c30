package tablefinder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftables-go/internal/cells"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/pageobjects"
	"github.com/pyhub-apps/pdftables-go/internal/words"
)

func line(x1, y1, x2, y2 float64) pageobjects.Line {
	return pageobjects.Line{
		Kind: pageobjects.Straight,
		Points: []geom.Point{
			{X: geom.Scalar(x1), Y: geom.Scalar(y1)},
			{X: geom.Scalar(x2), Y: geom.Scalar(y2)},
		},
	}
}

func char(text string, x1, y1, x2, y2 float64) pageobjects.Char {
	return pageobjects.Char{Text: text, BBox: geom.NewBBox(geom.Scalar(x1), geom.Scalar(y1), geom.Scalar(x2), geom.Scalar(y2)), Upright: true}
}

// Builds a 2x2 ruled grid from (0,0) to (20,20), one character centered in
// each quadrant: A top-left, B top-right, C bottom-left, D bottom-right.
func gridFixture() pageobjects.PageObjects {
	return pageobjects.PageObjects{
		Lines: []pageobjects.Line{
			line(0, 0, 20, 0), line(0, 10, 20, 10), line(0, 20, 20, 20),
			line(0, 0, 0, 20), line(10, 0, 10, 20), line(20, 0, 20, 20),
		},
		Chars: []pageobjects.Char{
			char("A", 4, 4, 6, 6),
			char("B", 14, 4, 16, 6),
			char("C", 4, 14, 6, 16),
			char("D", 14, 14, 16, 16),
		},
	}
}

func gridSettings() Settings {
	s := DefaultSettings()
	s.HorizontalStrategy = 0 // edges.Lines
	s.VerticalStrategy = 0
	s.SnapX, s.SnapY = geom.MustTolerance(1), geom.MustTolerance(1)
	s.JoinX, s.JoinY = geom.MustTolerance(1), geom.MustTolerance(1)
	s.IntersectionX, s.IntersectionY = geom.MustTolerance(1), geom.MustTolerance(1)
	s.EdgeMinLengthPrefilter = 0
	s.EdgeMinLength = 0
	return s
}

// spec.md §8, seed scenario 6 setup: four cells with text A, B, C, D.
func TestFindTables_AssignsCellTextByCharacterCenter(t *testing.T) {
	objs := gridFixture()
	s := gridSettings()

	found, err := FindTables(objs, s, true)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Len(t, found[0].Cells, 4)

	texts := make(map[string]string)
	for _, c := range found[0].Cells {
		key := geom.Point{X: c.BBox.X1, Y: c.BBox.Y1}
		texts[fmtPoint(key)] = c.Text
	}
	assert.Equal(t, "A", texts[fmtPoint(geom.Point{X: 0, Y: 0})])
	assert.Equal(t, "B", texts[fmtPoint(geom.Point{X: 10, Y: 0})])
	assert.Equal(t, "C", texts[fmtPoint(geom.Point{X: 0, Y: 10})])
	assert.Equal(t, "D", texts[fmtPoint(geom.Point{X: 10, Y: 10})])
}

func fmtPoint(p geom.Point) string {
	return fmt.Sprintf("%v,%v", p.X.Float64(), p.Y.Float64())
}

func TestFindTables_WithoutExtractTextLeavesTextEmpty(t *testing.T) {
	objs := gridFixture()
	s := gridSettings()

	found, err := FindTables(objs, s, false)
	require.NoError(t, err)
	require.Len(t, found, 1)
	for _, c := range found[0].Cells {
		assert.Empty(t, c.Text)
	}
}

func TestFindAllCells_ReturnsUngroupedCells(t *testing.T) {
	objs := gridFixture()
	s := gridSettings()

	got := FindAllCells(objs, s)
	assert.Len(t, got, 4)
}

func TestFindTablesFromCells_ErrorsWithoutObjectsWhenExtractingText(t *testing.T) {
	cellList := []cells.Cell{{BBox: geom.NewBBox(0, 0, 10, 10)}}
	_, err := FindTablesFromCells(cellList, true, nil, DefaultSettings())
	assert.ErrorIs(t, err, ErrTextNotExtracted)
}

func TestFindTablesFromCells_NoErrorWithoutExtractText(t *testing.T) {
	cellList := []cells.Cell{
		{BBox: geom.NewBBox(0, 0, 10, 10)},
		{BBox: geom.NewBBox(10, 0, 20, 10)},
	}
	got, err := FindTablesFromCells(cellList, false, nil, Settings{IncludeSingleCell: true})
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestTextInCell_PreservesIntraCellSpacing(t *testing.T) {
	bbox := geom.NewBBox(0, 0, 100, 10)
	chars := []pageobjects.Char{
		char("a", 0, 0, 5, 10),
		char(" ", 5, 0, 10, 10),
		char("b", 10, 0, 15, 10),
	}
	text := textInCell(bbox, chars, defaultWordSettings())
	assert.Equal(t, "a b", text)
}

func TestTextInCell_TrimsLeadingAndTrailingWhitespace(t *testing.T) {
	bbox := geom.NewBBox(0, 0, 100, 10)
	chars := []pageobjects.Char{
		char(" ", 0, 0, 5, 10),
		char("a", 5, 0, 10, 10),
		char(" ", 10, 0, 15, 10),
	}
	text := textInCell(bbox, chars, defaultWordSettings())
	assert.Equal(t, "a", text)
}

func TestTextInCell_NoCharsInBBoxReturnsEmpty(t *testing.T) {
	bbox := geom.NewBBox(0, 0, 10, 10)
	chars := []pageobjects.Char{char("a", 50, 50, 55, 55)}
	assert.Equal(t, "", textInCell(bbox, chars, defaultWordSettings()))
}

func defaultWordSettings() words.Settings {
	return words.DefaultSettings()
}
