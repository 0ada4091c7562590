// Package strata reconstructs the logical structure of PDF documents:
// headings, paragraphs with their section context, tables, and charts,
// organized page by page.
//
// Basic usage:
//
//	result, warnings, err := strata.Open("report.pdf").Structure()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", strata.FormatWarnings(warnings))
//	}
//
// With options:
//
//	data, _, err := strata.Open("scan.pdf").
//	    EnableOCR().
//	    OCRLanguage("deu").
//	    JSONIndent()
//
// Heading detection is driven by the document's own font profile: the
// largest rounded font size marks sections, the second largest marks
// subsections, and numbered lines like "2.1 Revenue" are headings
// regardless of size. Pages with no extractable text fall back to OCR of
// the rasterized page when OCR is enabled.
package strata

import (
	"github.com/tgrayson/strata/reader"
)

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The returned Extractor is closed implicitly by terminal operations like
// Structure() or JSON().
//
// Example:
//
//	result, warnings, err := strata.Open("report.pdf").Structure()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// OpenBytes creates an Extractor for a PDF held in memory.
//
// Example:
//
//	result, warnings, err := strata.OpenBytes(data).Structure()
func OpenBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// FromSource creates an Extractor from an already-opened Source. The
// caller is responsible for closing the source.
//
// Example:
//
//	doc, err := reader.Open("report.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	result, warnings, err := strata.FromSource(doc).Structure()
func FromSource(src Source) *Extractor {
	return &Extractor{
		source:       src,
		ownsSource:   false,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustStructure is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil. Warnings are
// discarded.
//
// Example:
//
//	result := strata.MustStructure(strata.Open("report.pdf").Structure())
func MustStructure[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

var _ Source = (*reader.Document)(nil)
