// Package pageobjects normalizes raw PDF primitives (characters, stroked
// paths, filled rectangles) into the single coordinate system the rest of
// the table-finding pipeline assumes: top-left origin, Y growing downward.
//
// Grounded on pkg/pdf/types.go (CharObject/LineObject/RectObject, the
// external PDF collaborator's own shapes) for the Go field layout, and on
// original_source/src/pages.rs (get_v_coord_with_bottom_origin, process_chars,
// process_path_obj) for the exact flip rules. Rectangle recognition
// (is_rect) is geom.IsAxisAlignedRect, applied in pkg/pdf before objects
// reach this package.
package pageobjects

import (
	"math"

	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/pkg/pdf"
)

// LineKind distinguishes a straight segment from a curve. Only Straight
// lines ever become Edges (spec.md §4.2); curves are retained for
// completeness and ignored by edge derivation.
type LineKind int

const (
	Straight LineKind = iota
	Curve
)

// Color is an RGBA stroke/fill color, 0-255 per channel.
type Color struct {
	R, G, B, A uint8
}

// Char is a single text character with its bbox and rotation.
type Char struct {
	// Text is the unicode string for this glyph. Empty when the source PDF
	// yields an unmapped glyph (rare but not an error).
	Text string
	BBox geom.BBox
	// RotationDegrees is the clockwise rotation of this character, in [0, 360).
	RotationDegrees geom.Scalar
	// Upright is true iff RotationDegrees is 0 or 180.
	Upright bool
}

// Line is an ordered sequence of points describing a stroked path.
type Line struct {
	Kind        LineKind
	Points      []geom.Point
	StrokeColor Color
	StrokeWidth geom.Scalar
}

// Rect is an axis-aligned filled and/or stroked rectangle.
type Rect struct {
	BBox        geom.BBox
	FillColor   Color
	StrokeColor Color
	StrokeWidth geom.Scalar
}

// PageObjects is the ordered set of objects extracted from one page. Once
// constructed it is treated as immutable by every downstream stage.
type PageObjects struct {
	Chars []Char
	Lines []Line
	Rects []Rect
}

// Rotation is a page rotation in degrees, one of {0, 90, 180, 270}.
type Rotation int

// flipY maps a PDF-native Y coordinate (origin bottom-left, Y increasing
// upward) to this pipeline's coordinate system (origin top-left, Y
// increasing downward). For 90/270 page rotation, width and height swap
// roles in the flip formula, mirroring pages.rs::get_v_coord_with_bottom_origin.
func flipY(y float64, rotation Rotation, pageWidth, pageHeight float64) float64 {
	if rotation == 90 || rotation == 270 {
		return pageWidth - y
	}
	return pageHeight - y
}

// FromPDF converts the external PDF collaborator's raw Objects (PDF-native
// coordinates, Y increasing upward from the page's bottom-left) into
// PageObjects in this pipeline's top-left-origin system. The root
// package's Page calls it once and memoizes the result; pkg/pdf's
// ExtractTablesFor and ExtractWordsFor call it again on every extraction.
func FromPDF(objs pdf.Objects, rotation Rotation, pageWidth, pageHeight float64) PageObjects {
	out := PageObjects{
		Chars: make([]Char, 0, len(objs.Chars)),
		Lines: make([]Line, 0, len(objs.Lines)),
		Rects: make([]Rect, 0, len(objs.Rects)),
	}

	for _, c := range objs.Chars {
		y1 := flipY(c.Y1, rotation, pageWidth, pageHeight)
		y2 := flipY(c.Y0, rotation, pageWidth, pageHeight)
		bbox := geom.NewBBox(
			geom.Scalar(c.X0), geom.Scalar(minF(y1, y2)),
			geom.Scalar(c.X1), geom.Scalar(maxF(y1, y2)),
		)
		rot := normalizeRotation(rotationFromMatrix(c.Matrix))
		out.Chars = append(out.Chars, Char{
			Text:            c.Text,
			BBox:            bbox,
			RotationDegrees: geom.Scalar(rot),
			Upright:         rot == 0 || rot == 180,
		})
	}

	for _, l := range objs.Lines {
		y0 := flipY(l.Y0, rotation, pageWidth, pageHeight)
		y1 := flipY(l.Y1, rotation, pageWidth, pageHeight)
		out.Lines = append(out.Lines, Line{
			Kind: Straight,
			Points: []geom.Point{
				{X: geom.Scalar(l.X0), Y: geom.Scalar(y0)},
				{X: geom.Scalar(l.X1), Y: geom.Scalar(y1)},
			},
			StrokeColor: Color(colorFrom(l.StrokeColor)),
			StrokeWidth: geom.Scalar(l.Width),
		})
	}

	for _, r := range objs.Rects {
		y1 := flipY(r.Y1, rotation, pageWidth, pageHeight)
		y2 := flipY(r.Y0, rotation, pageWidth, pageHeight)
		out.Rects = append(out.Rects, Rect{
			BBox:        geom.NewBBox(geom.Scalar(r.X0), geom.Scalar(minF(y1, y2)), geom.Scalar(r.X1), geom.Scalar(maxF(y1, y2))),
			FillColor:   Color(colorFrom(r.FillColor)),
			StrokeColor: Color(colorFrom(r.StrokeColor)),
			StrokeWidth: geom.Scalar(r.Width),
		})
	}

	return out
}

func colorFrom(c pdf.Color) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// rotationFromMatrix recovers the clockwise text rotation, in degrees, that
// the character's glyph-space-to-page-space transform matrix encodes. The
// identity matrix (A=D=1, B=C=0) is 0 degrees (upright, left-to-right).
func rotationFromMatrix(m pdf.TransformMatrix) float64 {
	if m.A == 0 && m.B == 0 {
		return 0
	}
	radians := math.Atan2(m.B, m.A)
	return -radians * 180 / math.Pi
}

func normalizeRotation(deg float64) float64 {
	r := deg
	for r < 0 {
		r += 360
	}
	for r >= 360 {
		r -= 360
	}
	return r
}

