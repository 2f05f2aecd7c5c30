package pdftables

import (
	"strings"
	"testing"
)

func TestOpenPDF(t *testing.T) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	if doc.PageCount() != 1 {
		t.Errorf("Expected 1 page, got %d", doc.PageCount())
	}
}

func TestExtractText(t *testing.T) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	text := page.ExtractText()
	if !strings.Contains(text, "Dummy PDF file") {
		t.Errorf("Expected text to contain 'Dummy PDF file', got: %s", text)
	}
}

func TestPageProperties(t *testing.T) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	if page.GetPageNumber() != 1 {
		t.Errorf("Expected page number 1, got %d", page.GetPageNumber())
	}

	width := page.GetWidth()
	height := page.GetHeight()

	// A4 is approximately 595 x 842 points.
	if width < 590 || width > 600 {
		t.Errorf("Unexpected page width: %.2f", width)
	}
	if height < 840 || height > 845 {
		t.Errorf("Unexpected page height: %.2f", height)
	}
}

func TestExtractWords(t *testing.T) {
	doc, err := Open("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		t.Fatalf("Failed to get page: %v", err)
	}

	wds, err := page.ExtractWords(DefaultSettings())
	if err != nil {
		t.Fatalf("ExtractWords: %v", err)
	}
	if len(wds) == 0 {
		t.Fatal("Expected to find at least one word")
	}
	if wds[0].Text != "Dummy" {
		t.Errorf("Expected first word to be 'Dummy', got %q", wds[0].Text)
	}
}
