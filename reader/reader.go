package reader

import (
	"fmt"
	"image"
	"strings"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/text/unicode/norm"

	"github.com/tgrayson/strata/model"
)

// Document is an open PDF document.
type Document struct {
	doc *fitz.Document
}

// Open opens the PDF at the given path.
func Open(filename string) (*Document, error) {
	doc, err := fitz.New(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	return &Document{doc: doc}, nil
}

// OpenBytes opens a PDF held in memory.
func OpenBytes(data []byte) (*Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening document from memory: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Close releases the underlying MuPDF document. It is safe to call on a
// nil Document.
func (d *Document) Close() error {
	if d == nil || d.doc == nil {
		return nil
	}
	err := d.doc.Close()
	d.doc = nil
	return err
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// Page parses the page with the given 1-indexed number into blocks and
// embedded images. Pages the renderer cannot parse yield an error; the
// engine treats that as a page-level failure, not a document failure.
func (d *Document) Page(number int) (*model.Page, error) {
	htmlSrc, err := d.doc.HTML(number-1, false)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", number, err)
	}

	blocks, images, err := parsePageHTML(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("parsing page %d: %w", number, err)
	}

	// Plain text backs the OCR-fallback decision. A failed extraction
	// leaves RawText empty, which routes the page to that fallback.
	raw, err := d.RawText(number)
	if err != nil {
		raw = ""
	}

	return &model.Page{
		Number:  number,
		Blocks:  blocks,
		Images:  images,
		RawText: raw,
	}, nil
}

// RawText returns the plain extracted text of the page with the given
// 1-indexed number, normalized to NFKC form.
func (d *Document) RawText(number int) (string, error) {
	text, err := d.doc.Text(number - 1)
	if err != nil {
		return "", fmt.Errorf("extracting text from page %d: %w", number, err)
	}
	return norm.NFKC.String(text), nil
}

// PageImage rasterizes the full page with the given 1-indexed number.
// Used for the OCR fallback on pages without extractable text.
func (d *Document) PageImage(number int) (image.Image, error) {
	img, err := d.doc.Image(number - 1)
	if err != nil {
		return nil, fmt.Errorf("rasterizing page %d: %w", number, err)
	}
	return img, nil
}
