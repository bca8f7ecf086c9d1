package document

import (
	"fmt"
	"image"

	fitz "github.com/gen2brain/go-fitz"
)

// FitzOpener opens documents with go-fitz (MuPDF, via cgo).
type FitzOpener struct{}

func (FitzOpener) Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return &fitzDoc{doc: doc}, nil
}

// fitzDoc adapts go-fitz's 0-based API to the 1-based Document interface.
type fitzDoc struct {
	doc *fitz.Document
}

func (d *fitzDoc) NumPages() int { return d.doc.NumPage() }

func (d *fitzDoc) PageSize(page int) (float64, float64, error) {
	bounds, err := d.doc.Bound(page - 1)
	if err != nil {
		return 0, 0, fmt.Errorf("page %d bounds: %w", page, err)
	}
	// Bound reports the page box at 72 dpi, so pixels equal points here.
	return float64(bounds.Dx()), float64(bounds.Dy()), nil
}

func (d *fitzDoc) RenderPage(page, widthPx, heightPx int) (image.Image, error) {
	w, _, err := d.PageSize(page)
	if err != nil {
		return nil, err
	}
	if w <= 0 {
		return nil, fmt.Errorf("page %d has zero width", page)
	}

	// MuPDF scales by dpi; derive it so the native render lands at (or very
	// near) the requested pixel width. The rasterizer snaps the result to
	// the exact backing-store size afterwards.
	dpi := 72 * float64(widthPx) / w
	img, err := d.doc.ImageDPI(page-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	return img, nil
}

func (d *fitzDoc) Close() error { return d.doc.Close() }
