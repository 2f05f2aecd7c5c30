package pdftables

import (
	"fmt"
	"testing"
)

func TestFindTables(t *testing.T) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	tables, err := page.FindTables(DefaultSettings(), true)
	if err != nil {
		t.Fatalf("FindTables: %v", err)
	}

	t.Logf("Found %d tables", len(tables))

	for i, table := range tables {
		rows := table.rows()
		t.Logf("Table %d:", i+1)
		t.Logf("  Dimensions: %d rows x %d columns", len(rows), maxColumns(rows))
		t.Logf("  BBox: (%.2f, %.2f) to (%.2f, %.2f)",
			table.BBox.X1, table.BBox.Y1, table.BBox.X2, table.BBox.Y2)

		maxRows := 5
		if len(rows) < maxRows {
			maxRows = len(rows)
		}
		for j := 0; j < maxRows; j++ {
			t.Logf("  Row %d: %v", j+1, rows[j])
		}
		if len(rows) > maxRows {
			t.Logf("  ... and %d more rows", len(rows)-maxRows)
		}
	}
}

func TestFindTablesWithSettings(t *testing.T) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	testCases := []struct {
		name     string
		settings Settings
	}{
		{
			name:     "Line-based detection",
			settings: NewSettings(WithVerticalStrategy(Lines), WithHorizontalStrategy(Lines)),
		},
		{
			name:     "Text-based detection",
			settings: NewSettings(WithVerticalStrategy(Text), WithHorizontalStrategy(Text)),
		},
		{
			name:     "Custom text tolerance",
			settings: NewSettings(WithTextTolerance(5.0, 5.0)),
		},
		{
			name:     "Include single-cell tables",
			settings: NewSettings(WithIncludeSingleCell(true)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tables, err := page.FindTables(tc.settings, true)
			if err != nil {
				t.Fatalf("FindTables: %v", err)
			}
			t.Logf("Test %s: Found %d tables", tc.name, len(tables))
			for i, table := range tables {
				rows := table.rows()
				t.Logf("  Table %d: %d rows x %d columns", i+1, len(rows), maxColumns(rows))
			}
		})
	}
}

func TestFindTablesInvalidConfig(t *testing.T) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	bad := NewSettings(WithSnapTolerance(-1, 3.0))
	_, err = page.FindTables(bad, true)
	if err == nil {
		t.Fatalf("expected InvalidConfigError for negative snap tolerance")
	}
	if _, ok := err.(*InvalidConfigError); !ok {
		t.Fatalf("expected *InvalidConfigError, got %T: %v", err, err)
	}
}

func TestFindTablesAccuracy(t *testing.T) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	tables, err := page.FindTables(DefaultSettings(), true)
	if err != nil {
		t.Fatalf("FindTables: %v", err)
	}

	for i, table := range tables {
		rows := table.rows()
		if len(rows) == 0 {
			t.Errorf("Table %d has no rows", i+1)
			continue
		}
		if table.BBox.X2 <= table.BBox.X1 || table.BBox.Y2 <= table.BBox.Y1 {
			t.Errorf("Table %d has invalid bounding box: (%.2f, %.2f) to (%.2f, %.2f)",
				i+1, table.BBox.X1, table.BBox.Y1, table.BBox.X2, table.BBox.Y2)
		}
	}
}

func maxColumns(rows [][]string) int {
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	return maxCols
}

func BenchmarkFindTables(b *testing.B) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		b.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		b.Fatalf("Failed to get page: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = page.FindTables(DefaultSettings(), true)
	}
}

func ExamplePage_FindTables() {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		panic(err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		panic(err)
	}

	tables, err := page.FindTables(DefaultSettings(), true)
	if err != nil {
		panic(err)
	}

	for i, table := range tables {
		csv, err := table.ToCSV()
		if err != nil {
			panic(err)
		}
		fmt.Printf("Table %d has %d cells\n", i+1, len(table.Cells))
		fmt.Print(csv)
	}
}
