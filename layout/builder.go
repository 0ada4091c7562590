package layout

import (
	"strings"

	"github.com/tgrayson/strata/model"
)

// PageBuilder walks a page's blocks in document order and emits the
// text-derived content stream: headings, accumulated paragraphs, and
// in-flow chart placeholders for image blocks.
//
// A PageBuilder holds no per-page state of its own; each Build call uses a
// fresh accumulator, so building the same page twice yields identical
// output and pages never leak section context into each other.
type PageBuilder struct {
	classifier *Classifier
}

// NewPageBuilder creates a page builder with a default classifier.
func NewPageBuilder() *PageBuilder {
	return &PageBuilder{classifier: NewClassifier()}
}

// NewPageBuilderWithClassifier creates a page builder using a custom
// classifier.
func NewPageBuilderWithClassifier(c *Classifier) *PageBuilder {
	return &PageBuilder{classifier: c}
}

// pageState is the accumulator threaded through one Build call: the active
// section/subsection context plus the paragraph buffer. Every page starts
// with no active section.
type pageState struct {
	section    *string
	subSection *string
	buffer     []string
	items      []model.ContentItem
}

// flush emits the buffered paragraph text, tagged with the context that was
// active while the text accumulated, then clears the buffer. Flushing an
// empty buffer is a no-op; no empty paragraph items are ever emitted.
func (s *pageState) flush() {
	if len(s.buffer) == 0 {
		return
	}
	text := normalizeWhitespace(strings.Join(s.buffer, " "))
	s.buffer = s.buffer[:0]
	if text == "" {
		return
	}
	s.items = append(s.items, model.Paragraph{
		Section:    s.section,
		SubSection: s.subSection,
		Text:       text,
	})
}

// Build produces the ordered text-derived content items for one page.
func (b *PageBuilder) Build(page *model.Page, profile FontProfile) []model.ContentItem {
	state := &pageState{}

	for _, block := range page.Blocks {
		switch blk := block.(type) {
		case model.TextBlock:
			for _, line := range blk.Lines {
				b.processLine(state, line, profile)
			}
		case model.ImageBlock:
			state.flush()
			state.items = append(state.items, model.Chart{
				Section:     state.section,
				Description: model.String("image block detected"),
			})
		default:
			state.flush()
		}
	}

	state.flush()
	return state.items
}

func (b *PageBuilder) processLine(state *pageState, line model.Line, profile FontProfile) {
	// Lines with no spans or empty joined text are skipped silently.
	if line.Text() == "" {
		return
	}

	result := b.classifier.Classify(line, profile)
	switch result.Kind {
	case KindSectionHeading:
		state.flush()
		state.section = model.String(result.Text)
		state.subSection = nil
		state.items = append(state.items, model.Heading{Level: 1, Text: result.Text})

	case KindSubsectionHeading:
		state.flush()
		state.subSection = model.String(result.Text)
		state.items = append(state.items, model.Heading{Level: 2, Text: result.Text})

	default:
		state.buffer = append(state.buffer, result.Text)
	}
}

// normalizeWhitespace collapses every run of whitespace, including
// non-breaking spaces, to a single ASCII space and trims the ends.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
