// Package edges derives horizontal and vertical Edges from a page's raw
// objects, one derivation strategy per axis (Lines, LinesStrict, Text).
//
// Grounded on original_source/src/tables.rs::make_edges for the Lines/
// LinesStrict split (a non-thin Rect contributes border edges only under
// Lines, never under LinesStrict) and on spec.md §4.2 for the Text
// strategy, which that revision of tables.rs does not implement (it
// panics on StrategyType::Text) — built fresh here on top of internal/words.
package edges

import (
	"sort"

	"github.com/pyhub-apps/pdftables-go/internal/cluster"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/pageobjects"
	"github.com/pyhub-apps/pdftables-go/internal/words"
)

// Orientation distinguishes horizontal from vertical edges.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Strategy selects how edges are derived for one axis.
type Strategy int

const (
	// Lines derives edges from stroked line objects and the four border
	// segments of every non-thin rectangle.
	Lines Strategy = iota
	// LinesStrict derives edges from stroked line objects and thin
	// rectangles only; a non-thin rectangle contributes no border edges
	// (strict mode only accepts explicit ruling-like primitives).
	LinesStrict
	// Text derives edges from the extents of clustered word gutters: a
	// vertical edge at a column boundary, a horizontal edge at a row
	// boundary, inferred from text alignment rather than drawn strokes.
	Text
)

// Edge is a single ruling segment: horizontal edges have Y1 == Y2, vertical
// edges have X1 == X2.
type Edge struct {
	Orientation Orientation
	BBox        geom.BBox
	StrokeWidth geom.Scalar
}

// Length returns the edge's extent along its own orientation.
func (e Edge) Length() geom.Scalar {
	if e.Orientation == Horizontal {
		return e.BBox.Width()
	}
	return e.BBox.Height()
}

// MinWords gates the Text strategy: a cluster of words shorter than this is
// not considered a ruling gutter. Grounded on spec.md §6's
// min_words_vertical/min_words_horizontal settings.
type MinWords struct {
	Horizontal int
	Vertical   int
}

// DefaultMinWords mirrors spec.md §6's documented defaults (3, 1).
func DefaultMinWords() MinWords {
	return MinWords{Horizontal: 1, Vertical: 3}
}

// Derive computes horizontal and vertical edges for a page's objects,
// using possibly-different strategies per axis (spec.md §4.2 allows this —
// the teacher's own TableExtractionOption pattern keeps per-axis settings
// independent too).
func Derive(objs pageobjects.PageObjects, hStrategy, vStrategy Strategy, snapX, snapY geom.Tolerance, wordSettings words.Settings, minWords MinWords) (horizontal, vertical []Edge) {
	horizontal = deriveAxis(objs, Horizontal, hStrategy, snapX, snapY, wordSettings, minWords)
	vertical = deriveAxis(objs, Vertical, vStrategy, snapX, snapY, wordSettings, minWords)
	return
}

func deriveAxis(objs pageobjects.PageObjects, orientation Orientation, strategy Strategy, snapX, snapY geom.Tolerance, wordSettings words.Settings, minWords MinWords) []Edge {
	switch strategy {
	case Text:
		if orientation == Horizontal {
			return deriveHorizontalTextEdges(objs, wordSettings, minWords.Horizontal)
		}
		return deriveVerticalTextEdges(objs, wordSettings, minWords.Vertical)
	default:
		return deriveLineEdges(objs, orientation, strategy, snapX, snapY)
	}
}

func absScalar(s geom.Scalar) geom.Scalar {
	if s < 0 {
		return -s
	}
	return s
}

// deriveLineEdges implements the Lines/LinesStrict strategies: straight
// lines classify as vertical/horizontal by how close their endpoints are
// on the cross axis (spec.md §4.2), and rects either collapse to a single
// center-line edge (when thin on one axis) or decompose into border edges
// (when not thin, and only under Lines).
func deriveLineEdges(objs pageobjects.PageObjects, orientation Orientation, strategy Strategy, snapX, snapY geom.Tolerance) []Edge {
	var out []Edge

	for _, l := range objs.Lines {
		if l.Kind != pageobjects.Straight || len(l.Points) != 2 {
			continue
		}
		p0, p1 := l.Points[0], l.Points[1]
		dx := absScalar(p0.X - p1.X)
		dy := absScalar(p0.Y - p1.Y)
		switch {
		case dx < snapX.Scalar():
			if orientation == Vertical {
				x := p0.X
				out = append(out, Edge{Orientation: Vertical, BBox: geom.NewBBox(x, p0.Y, x, p1.Y), StrokeWidth: l.StrokeWidth})
			}
		case dy < snapY.Scalar():
			if orientation == Horizontal {
				y := p0.Y
				out = append(out, Edge{Orientation: Horizontal, BBox: geom.NewBBox(p0.X, y, p1.X, y), StrokeWidth: l.StrokeWidth})
			}
		default:
			// sloped line, discarded
		}
	}

	for _, r := range objs.Rects {
		switch {
		case r.BBox.Width() < snapX.Scalar():
			if orientation == Vertical {
				cx := r.BBox.CenterX()
				out = append(out, Edge{Orientation: Vertical, BBox: geom.NewBBox(cx, r.BBox.Y1, cx, r.BBox.Y2), StrokeWidth: r.StrokeWidth})
			}
		case r.BBox.Height() < snapY.Scalar():
			if orientation == Horizontal {
				cy := r.BBox.CenterY()
				out = append(out, Edge{Orientation: Horizontal, BBox: geom.NewBBox(r.BBox.X1, cy, r.BBox.X2, cy), StrokeWidth: r.StrokeWidth})
			}
		case strategy == Lines:
			switch orientation {
			case Horizontal:
				out = append(out,
					Edge{Orientation: Horizontal, BBox: geom.NewBBox(r.BBox.X1, r.BBox.Y1, r.BBox.X2, r.BBox.Y1), StrokeWidth: r.StrokeWidth},
					Edge{Orientation: Horizontal, BBox: geom.NewBBox(r.BBox.X1, r.BBox.Y2, r.BBox.X2, r.BBox.Y2), StrokeWidth: r.StrokeWidth},
				)
			case Vertical:
				out = append(out,
					Edge{Orientation: Vertical, BBox: geom.NewBBox(r.BBox.X1, r.BBox.Y1, r.BBox.X1, r.BBox.Y2), StrokeWidth: r.StrokeWidth},
					Edge{Orientation: Vertical, BBox: geom.NewBBox(r.BBox.X2, r.BBox.Y1, r.BBox.X2, r.BBox.Y2), StrokeWidth: r.StrokeWidth},
				)
			}
			// LinesStrict: a non-thin rect contributes nothing.
		}
	}

	return out
}

// deriveHorizontalTextEdges implements spec.md §4.2's horizontal text-edge
// rule: cluster words by top y with tolerance 1, keep clusters with at
// least minWords words, and for each kept cluster emit two horizontal
// edges (its top and bottom) spanning the global x-extent of all kept
// clusters.
func deriveHorizontalTextEdges(objs pageobjects.PageObjects, settings words.Settings, minWords int) []Edge {
	ws := words.Extract(objs.Chars, settings)
	if len(ws) == 0 {
		return nil
	}

	rowTol := geom.MustTolerance(1.0)
	clusters := cluster.ClusterBy(ws, func(w words.Word) geom.Scalar { return w.BBox.Y1 }, rowTol)

	type kept struct{ bbox geom.BBox }
	var rows []kept
	for _, grp := range clusters {
		if len(grp) < minWords {
			continue
		}
		bboxes := make([]geom.BBox, len(grp))
		for i, w := range grp {
			bboxes[i] = w.BBox
		}
		union, _ := geom.UnionAll(bboxes)
		rows = append(rows, kept{bbox: union})
	}
	if len(rows) == 0 {
		return nil
	}

	globalMinX, globalMaxX := rows[0].bbox.X1, rows[0].bbox.X2
	for _, r := range rows[1:] {
		if r.bbox.X1 < globalMinX {
			globalMinX = r.bbox.X1
		}
		if r.bbox.X2 > globalMaxX {
			globalMaxX = r.bbox.X2
		}
	}

	out := make([]Edge, 0, len(rows)*2)
	for _, r := range rows {
		out = append(out,
			Edge{Orientation: Horizontal, BBox: geom.NewBBox(globalMinX, r.bbox.Y1, globalMaxX, r.bbox.Y1)},
			Edge{Orientation: Horizontal, BBox: geom.NewBBox(globalMinX, r.bbox.Y2, globalMaxX, r.bbox.Y2)},
		)
	}
	return out
}

// deriveVerticalTextEdges implements spec.md §4.2's vertical text-edge
// rule: cluster by left x, right x, and center x independently, keep
// clusters with at least minWords words, greedily keep the largest
// non-overlapping cluster bboxes, then emit one vertical edge per kept
// bbox at its x1 (plus a trailing edge at the overall max x2), each
// spanning the global top/bottom extent of all kept bboxes.
func deriveVerticalTextEdges(objs pageobjects.PageObjects, settings words.Settings, minWords int) []Edge {
	ws := words.Extract(objs.Chars, settings)
	if len(ws) == 0 {
		return nil
	}

	type candidate struct{ bbox geom.BBox }
	var candidates []candidate

	keyFns := []func(words.Word) geom.Scalar{
		func(w words.Word) geom.Scalar { return w.BBox.X1 },
		func(w words.Word) geom.Scalar { return w.BBox.X2 },
		func(w words.Word) geom.Scalar { return w.BBox.CenterX() },
	}
	for _, keyFn := range keyFns {
		for _, grp := range cluster.ClusterBy(ws, keyFn, settings.XTolerance) {
			if len(grp) < minWords {
				continue
			}
			bboxes := make([]geom.BBox, len(grp))
			for i, w := range grp {
				bboxes[i] = w.BBox
			}
			union, _ := geom.UnionAll(bboxes)
			candidates = append(candidates, candidate{bbox: union})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		sizeI := wordsInBBox(ws, candidates[i].bbox)
		sizeJ := wordsInBBox(ws, candidates[j].bbox)
		return sizeI > sizeJ
	})

	var kept []geom.BBox
	for _, c := range candidates {
		overlaps := false
		for _, k := range kept {
			if bboxesOverlap(c.bbox, k) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, c.bbox)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].X1 < kept[j].X1 })

	globalMinY, globalMaxY := kept[0].Y1, kept[0].Y2
	maxX2 := kept[0].X2
	for _, b := range kept[1:] {
		if b.Y1 < globalMinY {
			globalMinY = b.Y1
		}
		if b.Y2 > globalMaxY {
			globalMaxY = b.Y2
		}
		if b.X2 > maxX2 {
			maxX2 = b.X2
		}
	}

	out := make([]Edge, 0, len(kept)+1)
	for _, b := range kept {
		out = append(out, Edge{Orientation: Vertical, BBox: geom.NewBBox(b.X1, globalMinY, b.X1, globalMaxY)})
	}
	out = append(out, Edge{Orientation: Vertical, BBox: geom.NewBBox(maxX2, globalMinY, maxX2, globalMaxY)})
	return out
}

func wordsInBBox(ws []words.Word, b geom.BBox) int {
	n := 0
	for _, w := range ws {
		if b.ContainsCenter(w.BBox) {
			n++
		}
	}
	return n
}

func bboxesOverlap(a, b geom.BBox) bool {
	return a.X1 < b.X2 && b.X1 < a.X2 && a.Y1 < b.Y2 && b.Y1 < a.Y2
}
