package pdf

import (
	"github.com/pyhub-apps/pdftables-go/internal/cluster"
	"github.com/pyhub-apps/pdftables-go/internal/edges"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/pageobjects"
	"github.com/pyhub-apps/pdftables-go/internal/tablefinder"
	"github.com/pyhub-apps/pdftables-go/internal/words"
)

// toPageObjects converts a Page's raw Objects (PDF-native coordinates)
// into the core pipeline's top-left-origin PageObjects.
func toPageObjects(page Page) pageobjects.PageObjects {
	return pageobjects.FromPDF(page.GetObjects(), pageobjects.Rotation(page.GetRotation()), page.GetWidth(), page.GetHeight())
}

// ToPageObjects exposes toPageObjects for the root package, which drives
// the core pipeline directly to get cell-level (rather than grid-shaped)
// table results.
func ToPageObjects(page Page) pageobjects.PageObjects {
	return toPageObjects(page)
}

func strategyFromString(s string) edges.Strategy {
	switch s {
	case "lines_strict":
		return edges.LinesStrict
	case "text":
		return edges.Text
	default:
		return edges.Lines
	}
}

func wordSettingsFromConfig(textTolerance float64) words.Settings {
	s := words.DefaultSettings()
	s.XTolerance = geom.MustTolerance(textTolerance)
	s.YTolerance = geom.MustTolerance(textTolerance)
	return s
}

func tablefinderSettings(cfg *tableExtractionConfig) tablefinder.Settings {
	return tablefinder.Settings{
		HorizontalStrategy:     strategyFromString(cfg.HorizontalStrategy),
		VerticalStrategy:       strategyFromString(cfg.VerticalStrategy),
		SnapX:                  geom.MustTolerance(cfg.SnapXTolerance),
		SnapY:                  geom.MustTolerance(cfg.SnapYTolerance),
		JoinX:                  geom.MustTolerance(cfg.JoinXTolerance),
		JoinY:                  geom.MustTolerance(cfg.JoinYTolerance),
		EdgeMinLength:          geom.Scalar(cfg.EdgeMinLength),
		EdgeMinLengthPrefilter: geom.Scalar(cfg.EdgeMinLengthPrefilter),
		IntersectionX:          geom.MustTolerance(cfg.IntersectionXTolerance),
		IntersectionY:          geom.MustTolerance(cfg.IntersectionYTolerance),
		MinWords:               edges.MinWords{Horizontal: cfg.MinWordsHorizontal, Vertical: cfg.MinWordsVertical},
		IncludeSingleCell:      cfg.IncludeSingleCell,
		Words:                  wordSettingsFromConfig(cfg.TextTolerance),
	}
}

// ExtractTablesFor runs the full table-finding pipeline over page and
// renders each result as the collaborator layer's grid-shaped Table.
// Shared by every backend's ExtractTables (pdfcpu, dslipak, ledongthuc)
// so all three honor the same settings and algorithm.
func ExtractTablesFor(page Page, opts ...TableExtractionOption) []Table {
	cfg := defaultTableExtractionConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	objs := toPageObjects(page)
	settings := tablefinderSettings(cfg)

	found, err := tablefinder.FindTables(objs, settings, cfg.ExtractCellText)
	if err != nil {
		return []Table{}
	}

	out := make([]Table, 0, len(found))
	for _, t := range found {
		if len(t.Cells) < cfg.MinTableSize {
			continue
		}
		out = append(out, Table{
			Rows: rowsFromTable(t),
			BBox: BoundingBox{X0: t.BBox.X1.Float64(), Y0: t.BBox.Y1.Float64(), X1: t.BBox.X2.Float64(), Y1: t.BBox.Y2.Float64()},
		})
	}
	return out
}

// rowsFromTable arranges a table's cells into a grid of text rows,
// clustering by top coordinate to form rows and sorting left-to-right
// within each row.
func rowsFromTable(t tablefinder.Table) [][]string {
	rowTol := geom.MustTolerance(1.0)
	rowGroups := cluster.ClusterBy(t.Cells, func(c tablefinder.TableCell) geom.Scalar {
		return c.BBox.Y1
	}, rowTol)

	rows := make([][]string, 0, len(rowGroups))
	for _, group := range rowGroups {
		sorted := make([]tablefinder.TableCell, len(group))
		copy(sorted, group)
		for i := 1; i < len(sorted); i++ {
			for j := i; j > 0 && sorted[j].BBox.X1 < sorted[j-1].BBox.X1; j-- {
				sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
			}
		}
		row := make([]string, len(sorted))
		for i, c := range sorted {
			row[i] = c.Text
		}
		rows = append(rows, row)
	}
	return rows
}

// ExtractWordsFor runs word extraction over page using the rotation-aware
// core algorithm. Shared by every backend's ExtractWords.
func ExtractWordsFor(page Page, opts ...WordExtractionOption) []Word {
	cfg := defaultWordExtractionConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	objs := toPageObjects(page)
	settings := words.Settings{
		XTolerance:      geom.MustTolerance(cfg.XTolerance),
		YTolerance:      geom.MustTolerance(cfg.YTolerance),
		KeepBlank:       cfg.KeepBlankChars,
		UseTextFlow:     cfg.UseTextFlow,
		Clockwise:       true,
		ExpandLigatures: true,
	}

	extracted := words.Extract(objs.Chars, settings)
	out := make([]Word, len(extracted))
	for i, w := range extracted {
		out[i] = Word{
			Text:            w.Text,
			X0:              w.BBox.X1.Float64(),
			Y0:              w.BBox.Y1.Float64(),
			X1:              w.BBox.X2.Float64(),
			Y1:              w.BBox.Y2.Float64(),
			RotationDegrees: w.RotationDegrees.Float64(),
		}
	}
	return out
}
