package pdftables

import "github.com/pyhub-apps/pdftables-go/internal/edges"

// Orientation distinguishes horizontal from vertical edges.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Edge is a single ruling segment, as returned by Page.GetEdges. Horizontal
// edges have BBox.Y1 == BBox.Y2; vertical edges have BBox.X1 == BBox.X2.
type Edge struct {
	Orientation Orientation
	BBox        BBox
}

func edgesFromCore(in []edges.Edge) []Edge {
	out := make([]Edge, len(in))
	for i, e := range in {
		o := Horizontal
		if e.Orientation == edges.Vertical {
			o = Vertical
		}
		out[i] = Edge{Orientation: o, BBox: bboxFromGeom(e.BBox)}
	}
	return out
}
