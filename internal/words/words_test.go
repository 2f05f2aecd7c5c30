package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/pageobjects"
)

func upright(text string, x1, y1, x2, y2 float64) pageobjects.Char {
	return pageobjects.Char{
		Text:            text,
		BBox:            geom.NewBBox(geom.Scalar(x1), geom.Scalar(y1), geom.Scalar(x2), geom.Scalar(y2)),
		RotationDegrees: 0,
		Upright:         true,
	}
}

func rotated(text string, deg float64, x1, y1, x2, y2 float64) pageobjects.Char {
	return pageobjects.Char{
		Text:            text,
		BBox:            geom.NewBBox(geom.Scalar(x1), geom.Scalar(y1), geom.Scalar(x2), geom.Scalar(y2)),
		RotationDegrees: geom.Scalar(deg),
		Upright:         deg == 0 || deg == 180,
	}
}

// "cat" typed as three adjacent upright characters should merge into one
// word, and a following word after a gap should split.
func TestExtract_MergesAdjacentCharsIntoOneWord(t *testing.T) {
	chars := []pageobjects.Char{
		upright("c", 0, 0, 5, 10),
		upright("a", 5, 0, 10, 10),
		upright("t", 10, 0, 15, 10),
		upright("d", 40, 0, 45, 10), // far gap: new word
		upright("o", 45, 0, 50, 10),
		upright("g", 50, 0, 55, 10),
	}
	ws := Extract(chars, DefaultSettings())
	require.Len(t, ws, 2)
	assert.Equal(t, "cat", ws[0].Text)
	assert.Equal(t, "dog", ws[1].Text)
}

func TestExtract_DropsBlanksByDefault(t *testing.T) {
	chars := []pageobjects.Char{
		upright("a", 0, 0, 5, 10),
		upright(" ", 5, 0, 10, 10),
		upright("b", 10, 0, 15, 10),
	}
	ws := Extract(chars, DefaultSettings())
	require.Len(t, ws, 2)
	assert.Equal(t, "a", ws[0].Text)
	assert.Equal(t, "b", ws[1].Text)
}

func TestExtract_KeepBlankPreservesSpacingWithinAWord(t *testing.T) {
	chars := []pageobjects.Char{
		upright("a", 0, 0, 5, 10),
		upright(" ", 5, 0, 10, 10),
		upright("b", 10, 0, 15, 10),
	}
	settings := DefaultSettings()
	settings.KeepBlank = true
	ws := Extract(chars, settings)
	require.Len(t, ws, 1)
	assert.Equal(t, "a b", ws[0].Text)
}

func TestExtract_LigatureExpansion(t *testing.T) {
	chars := []pageobjects.Char{
		upright("ﬁ", 0, 0, 5, 10),
		upright("l", 5, 0, 10, 10),
		upright("e", 10, 0, 15, 10),
	}
	ws := Extract(chars, DefaultSettings())
	require.Len(t, ws, 1)
	assert.Equal(t, "file", ws[0].Text)
}

func TestExtract_LigatureExpansionDisabled(t *testing.T) {
	chars := []pageobjects.Char{
		upright("ﬁ", 0, 0, 5, 10),
		upright("l", 5, 0, 10, 10),
		upright("e", 10, 0, 15, 10),
	}
	settings := DefaultSettings()
	settings.ExpandLigatures = false
	ws := Extract(chars, settings)
	require.Len(t, ws, 1)
	assert.Equal(t, "ﬁle", ws[0].Text)
}

func TestExtract_SplitAtPunctuationAll(t *testing.T) {
	chars := []pageobjects.Char{
		upright("a", 0, 0, 5, 10),
		upright(",", 5, 0, 10, 10),
		upright("b", 10, 0, 15, 10),
	}
	settings := DefaultSettings()
	settings.SplitPunctuation = SplitAll
	ws := Extract(chars, settings)
	require.Len(t, ws, 3)
	assert.Equal(t, []string{"a", ",", "b"}, []string{ws[0].Text, ws[1].Text, ws[2].Text})
}

func TestExtract_SplitAtCustomPunctuation(t *testing.T) {
	chars := []pageobjects.Char{
		upright("a", 0, 0, 5, 10),
		upright("#", 5, 0, 10, 10),
		upright("b", 10, 0, 15, 10),
	}
	settings := DefaultSettings()
	settings.SplitPunctuation = SplitCustom
	settings.SplitCustomChars = "#"
	ws := Extract(chars, settings)
	require.Len(t, ws, 3)

	// A comma is not in the custom set, so it stays glued to its neighbors
	// (this merges everything into one word since there's no gap).
	commaChars := []pageobjects.Char{
		upright("a", 0, 0, 5, 10),
		upright(",", 5, 0, 10, 10),
	}
	ws2 := Extract(commaChars, settings)
	require.Len(t, ws2, 1)
	assert.Equal(t, "a,", ws2[0].Text)
}

func TestExtract_WordBBoxIsUnionOfCharBoxes(t *testing.T) {
	chars := []pageobjects.Char{
		upright("a", 0, 0, 5, 10),
		upright("b", 5, 2, 10, 12),
	}
	ws := Extract(chars, DefaultSettings())
	require.Len(t, ws, 1)
	assert.Equal(t, geom.NewBBox(0, 0, 10, 12), ws[0].BBox)
}

func TestExtract_UseTextFlowPreservesInputOrder(t *testing.T) {
	chars := []pageobjects.Char{
		upright("b", 10, 0, 15, 10),
		upright("a", 0, 0, 5, 10),
	}
	settings := DefaultSettings()
	settings.UseTextFlow = true
	// Even a huge gap tolerance does not join them: "a" starts left of "b",
	// and a character starting before its predecessor always opens a new word.
	settings.XTolerance = geom.MustTolerance(1000)
	ws := Extract(chars, settings)
	require.Len(t, ws, 2)
	assert.Equal(t, "b", ws[0].Text)
	assert.Equal(t, "a", ws[1].Text)
}

func TestExtract_90DegreeRotationReadsTopToBottom(t *testing.T) {
	// 90-degree rotation bucket: primary axis Y, ascending when clockwise.
	chars := []pageobjects.Char{
		rotated("a", 90, 0, 0, 10, 5),
		rotated("b", 90, 0, 5, 10, 10),
	}
	settings := DefaultSettings()
	ws := Extract(chars, settings)
	require.Len(t, ws, 1)
	assert.Equal(t, "ab", ws[0].Text)
}

// At 270 degrees the sort order used to find word boundaries runs Y
// descending, but merge_chars reverses the iteration order again so the
// final text still reads in natural top-to-bottom order.
func TestExtract_270DegreeWordsReadTopToBottom(t *testing.T) {
	chars := []pageobjects.Char{
		rotated("a", 270, 0, 0, 10, 5),
		rotated("b", 270, 0, 5, 10, 10),
	}
	ws := Extract(chars, DefaultSettings())
	require.Len(t, ws, 1)
	assert.Equal(t, "ab", ws[0].Text)
}

func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, Extract(nil, DefaultSettings()))
}

func TestDefaultSettings_MatchesSpecDefaults(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 3.0, s.XTolerance.Float64())
	assert.Equal(t, 3.0, s.YTolerance.Float64())
	assert.False(t, s.KeepBlank)
	assert.False(t, s.UseTextFlow)
	assert.True(t, s.Clockwise)
	assert.Equal(t, SplitNone, s.SplitPunctuation)
	assert.True(t, s.ExpandLigatures)
}
