package strata

import (
	"fmt"
	"image"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/tgrayson/strata/layout"
	"github.com/tgrayson/strata/model"
	"github.com/tgrayson/strata/ocr"
	"github.com/tgrayson/strata/reader"
	"github.com/tgrayson/strata/tables"
)

// Extractor provides a fluent interface for reconstructing document
// structure from PDFs. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte

	source       Source
	ownsSource   bool // true if we opened the source and should close it
	sourceOpened bool

	// Collaborator overrides
	tableExtractor TableExtractor
	recognizer     Recognizer

	// Configuration
	options StructureOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a copy of options.
// Each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:       e.filename,
		data:           e.data,
		source:         e.source,
		ownsSource:     e.ownsSource,
		sourceOpened:   e.sourceOpened,
		tableExtractor: e.tableExtractor,
		recognizer:     e.recognizer,
		options:        e.options.clone(),
		err:            e.err,
		warnings:       append([]Warning(nil), e.warnings...),
	}
}

// ensureSource opens the source if not already open. Failure to open the
// document is the only fatal error in the pipeline.
func (e *Extractor) ensureSource() error {
	if e.sourceOpened {
		return nil
	}

	switch {
	case e.filename != "":
		doc, err := reader.Open(e.filename)
		if err != nil {
			return fmt.Errorf("failed to open PDF: %w", err)
		}
		e.source = doc
	case e.data != nil:
		doc, err := reader.OpenBytes(e.data)
		if err != nil {
			return fmt.Errorf("failed to open PDF: %w", err)
		}
		e.source = doc
	default:
		return fmt.Errorf("no document specified")
	}

	e.ownsSource = true
	e.sourceOpened = true
	return nil
}

// Close releases resources associated with the Extractor. It is safe to
// call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsSource && e.source != nil {
		err := e.source.Close()
		e.source = nil
		e.ownsSource = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// EnableOCR turns on the OCR fallback for pages with no extractable text
// and OCR descriptions for embedded images. Requires the library to be
// built with the "ocr" build tag unless a custom recognizer is supplied
// via WithRecognizer; otherwise a warning is recorded and processing
// continues without OCR.
//
// Example:
//
//	result, warnings, err := strata.Open("scan.pdf").EnableOCR().Structure()
func (e *Extractor) EnableOCR() *Extractor {
	newExt := e.clone()
	newExt.options.ocrEnabled = true
	return newExt
}

// OCRLanguage sets the Tesseract language code used for recognition.
// The default is "eng". Implies EnableOCR.
//
// Example:
//
//	result, _, err := strata.Open("bericht.pdf").OCRLanguage("deu").Structure()
func (e *Extractor) OCRLanguage(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocrEnabled = true
	newExt.options.ocrLanguage = lang
	return newExt
}

// DisableTables turns off table detection on page text.
//
// Example:
//
//	result, _, err := strata.Open("report.pdf").DisableTables().Structure()
func (e *Extractor) DisableTables() *Extractor {
	newExt := e.clone()
	newExt.options.detectTables = false
	return newExt
}

// Tolerance sets the font size tolerance, in points, used when comparing
// line sizes against the document's heading thresholds. The default is
// 0.5.
func (e *Extractor) Tolerance(points float64) *Extractor {
	newExt := e.clone()
	newExt.options.tolerance = points
	return newExt
}

// Workers sets the number of pages assembled concurrently. The default
// is 1 (sequential). Output ordering is unaffected.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = 1
	}
	newExt.options.workers = n
	return newExt
}

// WithTableExtractor substitutes a custom table extractor for the bundled
// detector.
func (e *Extractor) WithTableExtractor(t TableExtractor) *Extractor {
	newExt := e.clone()
	newExt.tableExtractor = t
	return newExt
}

// WithRecognizer substitutes a custom OCR engine for the bundled
// Tesseract client. Implies EnableOCR. The caller retains ownership of
// the recognizer; it is not closed by terminal operations.
func (e *Extractor) WithRecognizer(r Recognizer) *Extractor {
	newExt := e.clone()
	newExt.recognizer = r
	newExt.options.ocrEnabled = true
	return newExt
}

// ============================================================================
// Terminal Operations (execute processing and return results)
// ============================================================================

// PageCount returns the total number of pages in the document.
// Note: this does NOT close the source, allowing further operations.
//
// Example:
//
//	ext := strata.Open("report.pdf")
//	defer ext.Close()
//	count, err := ext.PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	return e.source.PageCount(), nil
}

// Structure reconstructs the document's logical structure: one PageResult
// per source page, in page order, each holding the page's headings,
// paragraphs, tables, and charts.
//
// This is a terminal operation that closes the underlying source.
// Collaborator failures (unparseable pages, failed OCR, undecodable
// images) are reported as warnings; processing continues and the page
// count in the result always matches the source document.
//
// Example:
//
//	result, warnings, err := strata.Open("report.pdf").Structure()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", strata.FormatWarnings(warnings))
//	}
func (e *Extractor) Structure() (*model.DocumentResult, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	warnings := append([]Warning(nil), e.warnings...)

	// Parse all pages up front; the font profile needs sizes from the
	// whole document before any page can be classified. Unparseable
	// pages become empty pages so numbering stays contiguous.
	pageCount := e.source.PageCount()
	doc := &model.Document{Pages: make([]*model.Page, 0, pageCount)}
	for n := 1; n <= pageCount; n++ {
		page, err := e.source.Page(n)
		if err != nil {
			warnings = append(warnings, Warning{
				Page:    n,
				Stage:   "parse",
				Message: err.Error(),
			})
			page = &model.Page{Number: n}
		}
		doc.Pages = append(doc.Pages, page)
	}

	cfg := layout.DefaultClassifierConfig()
	cfg.Tolerance = e.options.tolerance

	asm := &assembler{
		profile: layout.AnalyzeProfile(doc),
		builder: layout.NewPageBuilderWithClassifier(layout.NewClassifierWithConfig(cfg)),
	}

	if e.options.detectTables {
		asm.tables = e.tableExtractor
		if asm.tables == nil {
			asm.tables = tables.NewDetector()
		}
	}

	if e.options.ocrEnabled {
		rec, ocrWarnings := e.openRecognizer()
		warnings = append(warnings, ocrWarnings...)
		asm.ocr = rec
		if rec != nil && e.recognizer == nil {
			defer rec.Close()
		}
	}

	src := e.source
	outcomes := make([]pageOutcome, len(doc.Pages))

	if e.options.workers > 1 {
		// go-fitz documents are not safe for concurrent use, so all
		// source access from workers goes through a shared lock.
		src = &lockedSource{src: src}

		var wg sync.WaitGroup
		sem := make(chan struct{}, e.options.workers)
		for i, page := range doc.Pages {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, page *model.Page) {
				defer wg.Done()
				defer func() { <-sem }()
				outcomes[i] = asm.assemble(src, page)
			}(i, page)
		}
		wg.Wait()
	} else {
		for i, page := range doc.Pages {
			outcomes[i] = asm.assemble(src, page)
		}
	}

	result := &model.DocumentResult{Pages: make([]model.PageResult, 0, len(outcomes))}
	for _, out := range outcomes {
		result.Pages = append(result.Pages, out.result)
		warnings = append(warnings, out.warnings...)
	}

	return result, warnings, nil
}

// JSON reconstructs the document structure and returns it serialized as
// compact JSON. This is a terminal operation that closes the underlying
// source.
//
// Example:
//
//	data, warnings, err := strata.Open("report.pdf").JSON()
func (e *Extractor) JSON() ([]byte, []Warning, error) {
	result, warnings, err := e.Structure()
	if err != nil {
		return nil, warnings, err
	}

	data, err := sonic.Marshal(result)
	if err != nil {
		return nil, warnings, fmt.Errorf("encoding result: %w", err)
	}
	return data, warnings, nil
}

// JSONIndent is like JSON but returns indented output suitable for
// writing to a file.
//
// Example:
//
//	data, warnings, err := strata.Open("report.pdf").JSONIndent()
func (e *Extractor) JSONIndent() ([]byte, []Warning, error) {
	result, warnings, err := e.Structure()
	if err != nil {
		return nil, warnings, err
	}

	data, err := sonic.ConfigDefault.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, warnings, fmt.Errorf("encoding result: %w", err)
	}
	return data, warnings, nil
}

// openRecognizer resolves the recognizer to use: a caller-supplied one,
// or the bundled Tesseract client. Unavailability is a warning, not an
// error; processing proceeds without OCR.
func (e *Extractor) openRecognizer() (Recognizer, []Warning) {
	if e.recognizer != nil {
		return e.recognizer, nil
	}

	client, err := ocr.New()
	if err != nil {
		return nil, []Warning{{
			Stage:   "ocr",
			Message: fmt.Sprintf("OCR unavailable: %v", err),
		}}
	}

	if err := client.SetLanguage(e.options.ocrLanguage); err != nil {
		client.Close()
		return nil, []Warning{{
			Stage:   "ocr",
			Message: fmt.Sprintf("setting OCR language %q: %v", e.options.ocrLanguage, err),
		}}
	}

	return client, nil
}

// lockedSource serializes access to a Source shared across workers.
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) PageCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.PageCount()
}

func (l *lockedSource) Page(number int) (*model.Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Page(number)
}

func (l *lockedSource) PageImage(number int) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.PageImage(number)
}

func (l *lockedSource) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Close()
}
