package model

import (
	"math"
	"strings"
)

// Span is a text fragment with uniform font styling, as produced by the
// layout parser. Spans are immutable.
type Span struct {
	// Text is the span's text content
	Text string

	// Size is the font size in points
	Size float64

	// FontName is the name of the font used by the span
	FontName string
}

// RoundedSize returns the span's font size rounded to one decimal place.
// All size comparisons in the engine operate on rounded sizes so that
// rendering jitter in the source document does not split one visual style
// into many distinct sizes.
func (s Span) RoundedSize() float64 {
	return math.Round(s.Size*10) / 10
}

// Line is a visually contiguous row of spans.
type Line struct {
	// Spans are the line's text fragments in left-to-right order
	Spans []Span
}

// Text returns the concatenated span texts with surrounding whitespace
// trimmed.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return strings.TrimSpace(sb.String())
}

// MaxSize returns the largest rounded span size on the line, or 0 for a
// line with no spans.
func (l Line) MaxSize() float64 {
	var max float64
	for _, s := range l.Spans {
		if sz := s.RoundedSize(); sz > max {
			max = sz
		}
	}
	return max
}

// IsBold reports whether any span on the line uses a font whose name
// contains "bold" (case-insensitive).
func (l Line) IsBold() bool {
	for _, s := range l.Spans {
		if strings.Contains(strings.ToLower(s.FontName), "bold") {
			return true
		}
	}
	return false
}

// Block is a typed page region. It is a closed sum: the only
// implementations are TextBlock, ImageBlock, and OtherBlock.
type Block interface {
	isBlock()
}

// TextBlock is an ordered sequence of lines sharing a page region.
type TextBlock struct {
	Lines []Line
}

func (TextBlock) isBlock() {}

// ImageBlock marks the in-flow position of a raster image. The image
// content itself is carried separately on the page (see Page.Images); the
// block is an opaque placeholder in the document order.
type ImageBlock struct{}

func (ImageBlock) isBlock() {}

// OtherBlock is any block type the layout parser yields that is neither
// text nor image. It carries no content.
type OtherBlock struct{}

func (OtherBlock) isBlock() {}

// EmbeddedImage is a raster image found on a page, resolvable to raw
// encoded pixel data for OCR. Data is nil when the image could not be
// extracted or decoded.
type EmbeddedImage struct {
	// Data is the encoded image bytes (PNG, JPEG, etc.), nil if extraction failed
	Data []byte

	// MIME is the declared media type, e.g. "image/png"
	MIME string
}

// Page is a single document page with its blocks in document order.
type Page struct {
	// Number is the 1-indexed page number
	Number int

	// Blocks are the page's regions in document order
	Blocks []Block

	// Images are the raster images embedded on the page
	Images []EmbeddedImage

	// RawText is the page's plain extracted text. A page whose RawText is
	// empty or whitespace-only has no extractable text and takes the OCR
	// fallback path.
	RawText string
}

// HasExtractableText reports whether the page yields any non-whitespace
// text at all.
func (p *Page) HasExtractableText() bool {
	return strings.TrimSpace(p.RawText) != ""
}

// Document is the full page-structured input to the engine.
type Document struct {
	Pages []*Page
}
