package strata

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/tgrayson/strata/layout"
	"github.com/tgrayson/strata/model"
	"github.com/tgrayson/strata/tables"
)

// Source provides page-structured access to a document. reader.Document
// is the bundled implementation; tests substitute fakes.
type Source interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page returns the parsed page with the given 1-indexed number.
	Page(number int) (*model.Page, error)

	// PageImage rasterizes the page with the given 1-indexed number.
	PageImage(number int) (image.Image, error)

	// Close releases the source's resources.
	Close() error
}

// TableExtractor detects table grids in a page's plain text.
type TableExtractor interface {
	DetectGrids(text string) []tables.Grid
}

// Recognizer performs optical character recognition. The bundled
// implementation is ocr.Client, available with the "ocr" build tag.
type Recognizer interface {
	// Recognize extracts text from encoded image bytes.
	Recognize(imageData []byte) (string, error)

	// RecognizeImage extracts text from a decoded image.
	RecognizeImage(img image.Image) (string, error)

	// Close releases the recognizer's resources.
	Close() error
}

// assembler turns parsed pages into per-page content streams. The font
// profile and classifier are shared across pages; the recognizer is
// serialized behind a mutex because OCR engines are not safe for
// concurrent use.
type assembler struct {
	profile layout.FontProfile
	builder *layout.PageBuilder
	tables  TableExtractor
	ocr     Recognizer
	ocrMu   sync.Mutex
}

// pageOutcome is the result of assembling one page.
type pageOutcome struct {
	result   model.PageResult
	warnings []Warning
}

// assemble builds the content stream for one page, absorbing collaborator
// failures as warnings. Content ordering is fixed: text-derived items
// first, then detected tables, then chart items for embedded images.
func (a *assembler) assemble(src Source, page *model.Page) pageOutcome {
	out := pageOutcome{
		result: model.PageResult{
			PageNumber: page.Number,
			Content:    []model.ContentItem{},
		},
	}

	if !page.HasExtractableText() {
		a.assembleScanned(src, page, &out)
	} else {
		out.result.Content = append(out.result.Content, a.builder.Build(page, a.profile)...)

		if a.tables != nil {
			for _, grid := range a.tables.DetectGrids(page.RawText) {
				out.result.Content = append(out.result.Content, model.Table{
					TableData: grid,
				})
			}
		}
	}

	for _, img := range page.Images {
		out.result.Content = append(out.result.Content, model.Chart{
			Description: a.describeImage(img, page.Number, &out),
		})
	}

	return out
}

// assembleScanned handles a page with no extractable text by recognizing
// the rasterized page. Recognized text becomes a single paragraph with no
// section context.
func (a *assembler) assembleScanned(src Source, page *model.Page, out *pageOutcome) {
	if a.ocr == nil {
		out.warnings = append(out.warnings, Warning{
			Page:    page.Number,
			Stage:   "ocr",
			Message: "page has no extractable text and OCR is not available",
		})
		return
	}

	img, err := src.PageImage(page.Number)
	if err != nil {
		out.warnings = append(out.warnings, Warning{
			Page:    page.Number,
			Stage:   "ocr",
			Message: fmt.Sprintf("rasterizing page: %v", err),
		})
		return
	}

	a.ocrMu.Lock()
	text, err := a.ocr.RecognizeImage(img)
	a.ocrMu.Unlock()
	if err != nil {
		out.warnings = append(out.warnings, Warning{
			Page:    page.Number,
			Stage:   "ocr",
			Message: fmt.Sprintf("recognizing page: %v", err),
		})
		return
	}

	if text = collapseWhitespace(text); text != "" {
		out.result.Content = append(out.result.Content, model.Paragraph{Text: text})
	}
}

// describeImage produces the description for an embedded image's chart
// item. Images whose bytes could not be extracted are reported as such;
// otherwise OCR text is used when available and non-empty.
func (a *assembler) describeImage(img model.EmbeddedImage, pageNum int, out *pageOutcome) *string {
	if img.Data == nil {
		return model.String("image detected (failed to extract)")
	}
	if a.ocr == nil {
		return model.String("image detected")
	}

	a.ocrMu.Lock()
	text, err := a.ocr.Recognize(img.Data)
	a.ocrMu.Unlock()
	if err != nil {
		out.warnings = append(out.warnings, Warning{
			Page:    pageNum,
			Stage:   "ocr",
			Message: fmt.Sprintf("recognizing embedded image: %v", err),
		})
		return model.String("image detected")
	}

	if text = collapseWhitespace(text); text == "" {
		return model.String("image detected")
	}
	return model.String(text)
}

// collapseWhitespace normalizes OCR output: every run of whitespace
// becomes a single space and the ends are trimmed.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
