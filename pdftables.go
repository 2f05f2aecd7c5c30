// Package pdftables derives tables, cells, and words from a PDF page's
// geometry: clustering strokes and text into edges, normalizing them,
// finding their intersections, assembling cells, and grouping cells into
// tables by corner-sharing connectivity.
package pdftables

import (
	"github.com/pyhub-apps/pdftables-go/internal/cells"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/pageobjects"
	"github.com/pyhub-apps/pdftables-go/internal/tablefinder"
	"github.com/pyhub-apps/pdftables-go/internal/words"
	"github.com/pyhub-apps/pdftables-go/pkg/pdf"
)

// Document wraps the external PDF collaborator's Document, exposing the
// core pipeline's page-level operations.
type Document struct {
	inner pdf.Document
}

// Open opens a PDF file and returns a Document, trying the dslipak backend
// first (better text extraction) and falling back to pdfcpu.
func Open(filepath string) (*Document, error) {
	doc, err := pdf.OpenWithDslipak(filepath)
	if err == nil {
		return &Document{inner: doc}, nil
	}
	doc, err = pdf.Open(filepath)
	if err != nil {
		return nil, err
	}
	return &Document{inner: doc}, nil
}

// OpenWithPassword opens a password-protected PDF file.
func OpenWithPassword(filepath, password string) (*Document, error) {
	doc, err := pdf.OpenWithPassword(filepath, password)
	if err != nil {
		return nil, err
	}
	return &Document{inner: doc}, nil
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf backend
// explicitly, skipping the pdfcpu fallback.
func OpenWithDslipak(filepath string) (*Document, error) {
	doc, err := pdf.OpenWithDslipak(filepath)
	if err != nil {
		return nil, err
	}
	return &Document{inner: doc}, nil
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return d.inner.PageCount()
}

// GetPage returns a specific page by index (0-based).
func (d *Document) GetPage(index int) (*Page, error) {
	p, err := d.inner.GetPage(index)
	if err != nil {
		return nil, err
	}
	return &Page{inner: p, index: index}, nil
}

// Close releases resources associated with the document. Pages obtained
// from it earlier are not marked closed, and no DocumentClosed error is
// reported for them.
func (d *Document) Close() error {
	return d.inner.Close()
}

// Page wraps a single PDF page, exposing the core table-finding pipeline
// directly rather than through the collaborator's grid-shaped Table.
type Page struct {
	inner pdf.Page
	index int

	objects     pageobjects.PageObjects
	objectsDone bool
}

// pageObjects computes and memoizes this page's normalized objects
// (spec.md §5: computed lazily on first access, memoized thereafter).
func (p *Page) pageObjects() pageobjects.PageObjects {
	if !p.objectsDone {
		p.objects = pdf.ToPageObjects(p.inner)
		p.objectsDone = true
	}
	return p.objects
}

// GetWidth returns the page width in points.
func (p *Page) GetWidth() float64 { return p.inner.GetWidth() }

// GetHeight returns the page height in points.
func (p *Page) GetHeight() float64 { return p.inner.GetHeight() }

// GetRotation returns the page's clockwise rotation in degrees.
func (p *Page) GetRotation() int { return p.inner.GetRotation() }

// GetPageNumber returns the page number (1-based), as reported by the
// underlying PDF collaborator.
func (p *Page) GetPageNumber() int { return p.inner.GetPageNumber() }

// ExtractText delegates to the underlying PDF collaborator's own text
// extraction (spec.md §6 scopes text extraction as an external
// collaborator concern; the core pipeline only consumes its character
// output).
func (p *Page) ExtractText() string { return p.inner.ExtractText() }

// GetEdges runs edge derivation and normalization only, returning the
// cleaned horizontal and vertical edge sets (spec.md §6's get_edges).
func (p *Page) GetEdges(s Settings) (horizontal, vertical []Edge, err error) {
	tfs, err := s.toTablefinderSettings()
	if err != nil {
		return nil, nil, err
	}
	h, v := tablefinder.GetEdges(p.pageObjects(), tfs)
	return edgesFromCore(h), edgesFromCore(v), nil
}

// FindAllCells runs the pipeline through cell construction and returns
// every minimal cell found, without grouping them into tables
// (spec.md §6's find_all_cells).
func (p *Page) FindAllCells(s Settings) ([]BBox, error) {
	tfs, err := s.toTablefinderSettings()
	if err != nil {
		return nil, err
	}
	found := tablefinder.FindAllCells(p.pageObjects(), tfs)
	out := make([]BBox, len(found))
	for i, c := range found {
		out[i] = bboxFromGeom(c.BBox)
	}
	return out, nil
}

// FindTablesFromCells groups a caller-supplied cell list (as returned by
// FindAllCells) into tables by corner-sharing connectivity
// (spec.md §6's find_tables_from_cells).
func (p *Page) FindTablesFromCells(cellBoxes []BBox, s Settings, extractText bool) ([]Table, error) {
	tfs, err := s.toTablefinderSettings()
	if err != nil {
		return nil, err
	}

	cellList := make([]cells.Cell, len(cellBoxes))
	for i, b := range cellBoxes {
		cellList[i] = cells.Cell{BBox: geomBBoxFromRoot(b)}
	}

	var objsPtr *pageobjects.PageObjects
	if extractText {
		objs := p.pageObjects()
		objsPtr = &objs
	}

	found, err := tablefinder.FindTablesFromCells(cellList, extractText, objsPtr, tfs)
	if err != nil {
		return nil, err
	}
	out := make([]Table, len(found))
	for i, t := range found {
		out[i] = tableFromCore(t, p.index, extractText)
	}
	return out, nil
}

// FindTables runs the complete pipeline: edges, normalization,
// intersections, cells, and table assembly, optionally filling in cell
// text (spec.md §6's find_tables).
func (p *Page) FindTables(s Settings, extractText bool) ([]Table, error) {
	tfs, err := s.toTablefinderSettings()
	if err != nil {
		return nil, err
	}
	found, err := tablefinder.FindTables(p.pageObjects(), tfs, extractText)
	if err != nil {
		return nil, err
	}
	out := make([]Table, len(found))
	for i, t := range found {
		out[i] = tableFromCore(t, p.index, extractText)
	}
	return out, nil
}

// ExtractWords runs rotation-aware word extraction over the page's
// characters (spec.md §4.7).
func (p *Page) ExtractWords(s Settings) ([]Word, error) {
	tfs, err := s.toTablefinderSettings()
	if err != nil {
		return nil, err
	}
	extracted := words.Extract(p.pageObjects().Chars, tfs.Words)
	out := make([]Word, len(extracted))
	for i, w := range extracted {
		out[i] = Word{BBox: bboxFromGeom(w.BBox), Text: w.Text, RotationDegrees: w.RotationDegrees.Float64()}
	}
	return out, nil
}
