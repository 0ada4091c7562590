package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tgrayson/strata/model"
)

// Kind is the classification of a single line.
type Kind int

const (
	// KindParagraph is plain body text
	KindParagraph Kind = iota

	// KindSectionHeading is a level-1 heading
	KindSectionHeading

	// KindSubsectionHeading is a level-2 heading
	KindSubsectionHeading
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindSectionHeading:
		return "section"
	case KindSubsectionHeading:
		return "subsection"
	default:
		return "paragraph"
	}
}

// Classification is the result of classifying one line.
type Classification struct {
	// Kind is the detected line kind
	Kind Kind

	// Text is the heading text with the numbering token stripped, or the
	// raw line text for paragraphs
	Text string

	// Numbering is the numbering token for numbered headings (e.g. "2.3.1"),
	// empty otherwise
	Numbering string
}

// numberingPattern matches headings with explicit numbering such as
// "1. Title", "2.3 Title", or "4-Title". The first group captures the
// numbering token, the last the remaining title text.
var numberingPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)(?:\s+|-)\s*(.*)`)

// ClassifierConfig holds configuration for line classification.
type ClassifierConfig struct {
	// Tolerance absorbs floating-point and rendering jitter when comparing
	// a line's size against the profile thresholds.
	// Default: 0.5
	Tolerance float64

	// MaxBoldHeadingLen is the maximum length in characters for the
	// bold-short fallback to consider a line a heading.
	// Default: 120
	MaxBoldHeadingLen int
}

// DefaultClassifierConfig returns the default classification thresholds.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Tolerance:         0.5,
		MaxBoldHeadingLen: 120,
	}
}

// Classifier decides whether a line is a numbered heading, a font-size
// heading, a bold-heuristic heading, or plain body text.
//
// Rules are evaluated in a fixed order with first match winning. Numbering
// is checked before the size thresholds: a numbered line classifies by its
// numbering even at the document's largest font size. Some documents style
// only non-numbered top-level titles at the largest size while numbering
// subsections; for those the numbering-first precedence is a known
// heuristic limitation, kept deliberately.
type Classifier struct {
	config ClassifierConfig
	rules  []rule
}

// rule is one pure predicate in the precedence chain. It returns a
// classification and true when it matches the line.
type rule func(c *Classifier, line model.Line, profile FontProfile) (Classification, bool)

// NewClassifier creates a classifier with default configuration.
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultClassifierConfig())
}

// NewClassifierWithConfig creates a classifier with custom configuration.
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	if config.Tolerance < 0 {
		config.Tolerance = 0
	}
	if config.MaxBoldHeadingLen <= 0 {
		config.MaxBoldHeadingLen = 120
	}
	return &Classifier{
		config: config,
		rules: []rule{
			(*Classifier).matchNumbering,
			(*Classifier).matchSectionSize,
			(*Classifier).matchSubsectionSize,
			(*Classifier).matchBoldShort,
		},
	}
}

// Classify applies the rule chain to a line and returns the first match,
// falling back to a paragraph classification carrying the raw line text.
func (c *Classifier) Classify(line model.Line, profile FontProfile) Classification {
	for _, r := range c.rules {
		if result, ok := r(c, line, profile); ok {
			return result
		}
	}
	return Classification{Kind: KindParagraph, Text: line.Text()}
}

// matchNumbering detects explicit numbering prefixes. The numbering token's
// dot count plus one gives the nesting level; levels deeper than two
// collapse to subsection, since only two heading levels are ever emitted.
func (c *Classifier) matchNumbering(line model.Line, _ FontProfile) (Classification, bool) {
	text := line.Text()
	m := numberingPattern.FindStringSubmatch(text)
	if m == nil {
		return Classification{}, false
	}

	numbering := m[1]
	title := strings.TrimSpace(m[2])
	if title == "" {
		title = text
	}

	kind := KindSubsectionHeading
	if strings.Count(numbering, ".") == 0 {
		kind = KindSectionHeading
	}

	return Classification{Kind: kind, Text: title, Numbering: numbering}, true
}

// matchSectionSize classifies a line whose max span size reaches the
// document's largest size, within tolerance.
func (c *Classifier) matchSectionSize(line model.Line, profile FontProfile) (Classification, bool) {
	size, ok := profile.SectionSize()
	if !ok || line.MaxSize() < size-c.config.Tolerance {
		return Classification{}, false
	}
	return Classification{Kind: KindSectionHeading, Text: line.Text()}, true
}

// matchSubsectionSize classifies a line whose max span size reaches the
// document's second-largest size, within tolerance.
func (c *Classifier) matchSubsectionSize(line model.Line, profile FontProfile) (Classification, bool) {
	size, ok := profile.SubsectionSize()
	if !ok || line.MaxSize() < size-c.config.Tolerance {
		return Classification{}, false
	}
	return Classification{Kind: KindSubsectionHeading, Text: line.Text()}, true
}

// matchBoldShort catches headings rendered in body-sized-but-bold fonts: a
// bold line shorter than MaxBoldHeadingLen characters whose size exceeds
// the subsection reference size (or the section size when only one size
// exists). When the profile holds no sizes at all the size condition is
// vacuous and boldness alone decides, which keeps the detector useful on
// documents without font metadata.
func (c *Classifier) matchBoldShort(line model.Line, profile FontProfile) (Classification, bool) {
	text := line.Text()
	if !line.IsBold() || utf8.RuneCountInString(text) >= c.config.MaxBoldHeadingLen {
		return Classification{}, false
	}

	ref, ok := profile.SubsectionSize()
	if !ok {
		ref, ok = profile.SectionSize()
	}
	if ok && line.MaxSize() <= ref {
		return Classification{}, false
	}

	return Classification{Kind: KindSubsectionHeading, Text: text}, true
}
