// Package serialize renders a finished table (rows of cell text) as CSV,
// Markdown, or HTML. Grounded on spec.md §4.8 — original_source has no
// serializer of its own (the Rust side hands structured Table/TableCell
// values back to Python and lets pdfplumber-python format them), so this
// is new code written in the teacher's style.
package serialize

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// CSV writes rows as RFC 4180 CSV using the standard library's writer for
// quoting/escaping, matching how the teacher already leans on stdlib
// encoders elsewhere (e.g. encoding/json is absent here only because no
// JSON output is in scope). encoding/csv always terminates the last record
// with its own line ending; spec.md §4.8 defines rows as *joined* by "\n"
// with no trailing record terminator, so that final newline is trimmed.
func CSV(rows [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("serialize: csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("serialize: csv: %w", err)
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// Markdown renders rows as a GitHub-flavored Markdown table: the first row
// is the header, followed by a `---` separator row, pipe-delimited.
// Escapes literal pipes and collapses newlines within a cell so the table
// stays one Markdown block per row.
func Markdown(rows [][]string) string {
	return markdown(rows, false)
}

// MarkdownAligned is Markdown with column widths padded so the raw
// Markdown source lines up visually, using go-runewidth so East-Asian-width
// characters pad correctly. An enrichment beyond spec.md's minimal format —
// the default Markdown func above matches spec.md §8.6's seed scenario
// exactly; this is opt-in.
func MarkdownAligned(rows [][]string) string {
	return markdown(rows, true)
}

func markdown(rows [][]string, aligned bool) string {
	if len(rows) == 0 {
		return ""
	}

	escaped := make([][]string, len(rows))
	for i, row := range rows {
		escaped[i] = make([]string, len(row))
		for j, cell := range row {
			escaped[i][j] = escapeMarkdownCell(cell)
		}
	}

	widths := make([]int, len(escaped[0]))
	if aligned {
		for _, row := range escaped {
			for j, cell := range row {
				if w := runewidth.StringWidth(cell); w > widths[j] {
					widths[j] = w
				}
			}
		}
	}

	renderRow := func(row []string) string {
		var sb strings.Builder
		sb.WriteString("|")
		for j, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(padded(cell, widths, j, aligned))
			sb.WriteString(" |")
		}
		return sb.String()
	}

	renderSeparator := func() string {
		var sb strings.Builder
		sb.WriteString("|")
		for j := range escaped[0] {
			sb.WriteString(" ")
			sb.WriteString(strings.Repeat("-", dashWidth(widths, j, aligned)))
			sb.WriteString(" |")
		}
		return sb.String()
	}

	lines := make([]string, 0, len(escaped)+1)
	lines = append(lines, renderRow(escaped[0]))
	lines = append(lines, renderSeparator())
	for _, row := range escaped[1:] {
		lines = append(lines, renderRow(row))
	}

	return strings.Join(lines, "\n")
}

func padded(cell string, widths []int, col int, aligned bool) string {
	if !aligned {
		return cell
	}
	pad := widths[col] - runewidth.StringWidth(cell)
	if pad <= 0 {
		return cell
	}
	return cell + strings.Repeat(" ", pad)
}

func dashWidth(widths []int, col int, aligned bool) int {
	if !aligned || widths[col] < 3 {
		return 3
	}
	return widths[col]
}

func escapeMarkdownCell(cell string) string {
	cell = strings.ReplaceAll(cell, "|", "\\|")
	cell = strings.ReplaceAll(cell, "\r", "")
	cell = strings.ReplaceAll(cell, "\n", "<br>")
	return cell
}

// HTML renders rows as a minimal <table> with one <tr> per row and <td> per
// cell, escaping &, <, >, and " in cell text.
func HTML(rows [][]string) string {
	if len(rows) == 0 {
		return "<table></table>"
	}

	var sb strings.Builder
	sb.WriteString("<table>\n")

	for _, row := range rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>")
			sb.WriteString(escapeHTML(cell))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>\n")
	}

	sb.WriteString("</table>")
	return sb.String()
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return s
}
