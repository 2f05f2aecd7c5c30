package edges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/pageobjects"
	"github.com/pyhub-apps/pdftables-go/internal/words"
)

func straightLine(x1, y1, x2, y2 float64) pageobjects.Line {
	return pageobjects.Line{
		Kind: pageobjects.Straight,
		Points: []geom.Point{
			{X: geom.Scalar(x1), Y: geom.Scalar(y1)},
			{X: geom.Scalar(x2), Y: geom.Scalar(y2)},
		},
	}
}

func rect(x1, y1, x2, y2 float64) pageobjects.Rect {
	return pageobjects.Rect{BBox: geom.NewBBox(geom.Scalar(x1), geom.Scalar(y1), geom.Scalar(x2), geom.Scalar(y2))}
}

func tol(v float64) geom.Tolerance { return geom.MustTolerance(v) }

// spec.md §4.2: a near-vertical line (dx below snapX) emits a vertical
// edge; a near-horizontal line emits a horizontal edge; a sloped line is
// discarded entirely.
func TestDeriveLineEdges_ClassifiesByEndpointProximity(t *testing.T) {
	objs := pageobjects.PageObjects{
		Lines: []pageobjects.Line{
			straightLine(5, 0, 5, 10),    // vertical
			straightLine(0, 5, 10, 5),    // horizontal
			straightLine(0, 0, 10, 10),   // sloped: discarded
		},
	}

	h := deriveLineEdges(objs, Horizontal, LinesStrict, tol(1), tol(1))
	v := deriveLineEdges(objs, Vertical, LinesStrict, tol(1), tol(1))

	require.Len(t, h, 1)
	assert.Equal(t, geom.NewBBox(0, 5, 10, 5), h[0].BBox)
	require.Len(t, v, 1)
	assert.Equal(t, geom.NewBBox(5, 0, 5, 10), v[0].BBox)
}

func TestDeriveLineEdges_ThinRectCollapsesToCenterLine(t *testing.T) {
	objs := pageobjects.PageObjects{Rects: []pageobjects.Rect{rect(0, 0, 0.5, 10)}} // thin: width < snapX

	v := deriveLineEdges(objs, Vertical, LinesStrict, tol(1), tol(1))
	require.Len(t, v, 1)
	assert.Equal(t, geom.Scalar(0.25), v[0].BBox.X1)
}

// spec.md §4.2: a non-thin rect decomposes into border edges only under
// Lines, never under LinesStrict.
func TestDeriveLineEdges_NonThinRectBorderDecomposition(t *testing.T) {
	objs := pageobjects.PageObjects{Rects: []pageobjects.Rect{rect(0, 0, 10, 10)}}

	strict := deriveLineEdges(objs, Horizontal, LinesStrict, tol(1), tol(1))
	assert.Empty(t, strict)

	lines := deriveLineEdges(objs, Horizontal, Lines, tol(1), tol(1))
	require.Len(t, lines, 2)
	assert.ElementsMatch(t, []geom.BBox{
		geom.NewBBox(0, 0, 10, 0),
		geom.NewBBox(0, 10, 10, 10),
	}, []geom.BBox{lines[0].BBox, lines[1].BBox})
}

func TestDerive_IndependentStrategiesPerAxis(t *testing.T) {
	objs := pageobjects.PageObjects{Rects: []pageobjects.Rect{rect(0, 0, 10, 10)}}

	h, v := Derive(objs, Lines, LinesStrict, tol(1), tol(1), words.DefaultSettings(), DefaultMinWords())
	assert.Len(t, h, 2) // Lines: border decomposition
	assert.Empty(t, v)  // LinesStrict: no decomposition
}

func TestEdge_Length(t *testing.T) {
	h := Edge{Orientation: Horizontal, BBox: geom.NewBBox(0, 0, 10, 0)}
	assert.Equal(t, geom.Scalar(10), h.Length())

	v := Edge{Orientation: Vertical, BBox: geom.NewBBox(0, 0, 0, 7)}
	assert.Equal(t, geom.Scalar(7), v.Length())
}

func TestDefaultMinWords_MatchesSpecDefaults(t *testing.T) {
	m := DefaultMinWords()
	assert.Equal(t, 1, m.Horizontal)
	assert.Equal(t, 3, m.Vertical)
}

func charAt(text string, x1, y1, x2, y2 float64) pageobjects.Char {
	return pageobjects.Char{Text: text, BBox: geom.NewBBox(geom.Scalar(x1), geom.Scalar(y1), geom.Scalar(x2), geom.Scalar(y2)), Upright: true}
}

// spec.md §4.2 Text strategy: a horizontal cluster with fewer words than
// min_words_horizontal is not a candidate gutter.
func TestDeriveHorizontalTextEdges_RequiresMinWords(t *testing.T) {
	objs := pageobjects.PageObjects{
		Chars: []pageobjects.Char{
			charAt("a", 0, 0, 5, 10),
			charAt("b", 40, 0, 45, 10),
		},
	}
	out := deriveHorizontalTextEdges(objs, words.DefaultSettings(), 3)
	assert.Empty(t, out)

	out = deriveHorizontalTextEdges(objs, words.DefaultSettings(), 2)
	assert.NotEmpty(t, out)
}
