package serialize

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spec.md §8, seed scenario 6: CSV of a 2x2 table with texts A,B,C,D
// arranged top-left, top-right, bottom-left, bottom-right.
func TestCSV_SeedScenario(t *testing.T) {
	out, err := CSV([][]string{{"A", "B"}, {"C", "D"}})
	require.NoError(t, err)
	assert.Equal(t, "A,B\nC,D", out)
}

func TestMarkdown_SeedScenario(t *testing.T) {
	out := Markdown([][]string{{"A", "B"}, {"C", "D"}})
	assert.Equal(t, "| A | B |\n| --- | --- |\n| C | D |", out)
}

func TestHTML_SeedScenario(t *testing.T) {
	out := HTML([][]string{{"A", "B"}, {"C", "D"}})
	assert.Equal(t, "<table>\n<tr><td>A</td><td>B</td></tr>\n<tr><td>C</td><td>D</td></tr>\n</table>", out)
}

// spec.md §8: CSV round-trip safety — parsing the emitted CSV with a
// conforming parser recovers every original cell text.
func TestCSV_RoundTripsSpecialCharacters(t *testing.T) {
	rows := [][]string{
		{"plain", "has,comma", "has\"quote", "has\nnewline"},
	}
	out, err := CSV(rows)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(out))
	got, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rows[0], got[0])
}

func TestMarkdown_EscapesPipesAndNewlines(t *testing.T) {
	out := Markdown([][]string{{"a|b"}, {"line1\nline2"}})
	assert.Contains(t, out, "a\\|b")
	assert.Contains(t, out, "line1<br>line2")
}

func TestMarkdown_SingleRowGetsSeparatorAppended(t *testing.T) {
	out := Markdown([][]string{{"A", "B"}})
	assert.Equal(t, "| A | B |\n| --- | --- |", out)
}

func TestMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", Markdown(nil))
}

func TestHTML_EscapesSpecialCharacters(t *testing.T) {
	out := HTML([][]string{{"<b>&\"x\"</b>"}})
	assert.Contains(t, out, "&lt;b&gt;&amp;&quot;x&quot;&lt;/b&gt;")
}

func TestHTML_ReplacesNewlinesWithBr(t *testing.T) {
	out := HTML([][]string{{"line1\nline2"}})
	assert.Contains(t, out, "line1<br>line2")
}

func TestHTML_Empty(t *testing.T) {
	assert.Equal(t, "<table></table>", HTML(nil))
}

func TestMarkdownAligned_PadsColumnsToCommonWidth(t *testing.T) {
	out := MarkdownAligned([][]string{{"a", "header"}, {"longvalue", "b"}})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	// Every row line (not the separator) should have the same length once
	// padded to the widest cell in each column.
	assert.Equal(t, len(lines[0]), len(lines[2]))
}
