package pdftables

// Word is a maximal run of characters recognized as a single word by
// Page.ExtractWords (spec.md §4.7).
type Word struct {
	BBox            BBox
	Text            string
	RotationDegrees float64
}
