package pdftables

import (
	"testing"
)

func TestGetEdges(t *testing.T) {
	// Note: for proper testing, use a PDF with actual ruling lines.
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	horizontal, vertical, err := page.GetEdges(NewSettings(WithVerticalStrategy(Lines), WithHorizontalStrategy(Lines)))
	if err != nil {
		t.Fatalf("GetEdges: %v", err)
	}

	t.Logf("Edge derivation results:")
	t.Logf("  Horizontal: %d", len(horizontal))
	t.Logf("  Vertical: %d", len(vertical))

	maxLog := 3
	for i := 0; i < len(horizontal) && i < maxLog; i++ {
		e := horizontal[i]
		t.Logf("  H edge %d: (%.2f, %.2f) to (%.2f, %.2f)", i+1, e.BBox.X1, e.BBox.Y1, e.BBox.X2, e.BBox.Y2)
	}
	for i := 0; i < len(vertical) && i < maxLog; i++ {
		e := vertical[i]
		t.Logf("  V edge %d: (%.2f, %.2f) to (%.2f, %.2f)", i+1, e.BBox.X1, e.BBox.Y1, e.BBox.X2, e.BBox.Y2)
	}

	for _, e := range horizontal {
		if e.BBox.Y1 != e.BBox.Y2 {
			t.Errorf("horizontal edge is not level: %+v", e.BBox)
		}
	}
	for _, e := range vertical {
		if e.BBox.X1 != e.BBox.X2 {
			t.Errorf("vertical edge is not plumb: %+v", e.BBox)
		}
	}
}

func TestFindAllCells(t *testing.T) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	cellBoxes, err := page.FindAllCells(DefaultSettings())
	if err != nil {
		t.Fatalf("FindAllCells: %v", err)
	}
	t.Logf("Found %d cells", len(cellBoxes))

	tables, err := page.FindTablesFromCells(cellBoxes, DefaultSettings(), true)
	if err != nil {
		t.Fatalf("FindTablesFromCells: %v", err)
	}
	t.Logf("Assembled %d tables from cells", len(tables))
}
