package layout

import (
	"strings"
	"testing"

	"github.com/tgrayson/strata/model"
)

// makeLine creates a single-span line for classifier tests.
func makeLine(text string, size float64, fontName string) model.Line {
	return model.Line{Spans: []model.Span{{Text: text, Size: size, FontName: fontName}}}
}

// twoSizeProfile is a typical profile: 18pt sections, 14pt subsections.
var twoSizeProfile = FontProfile{Sizes: []float64{18, 14, 10}}

func TestClassifyNumbering(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name      string
		text      string
		kind      Kind
		heading   string
		numbering string
	}{
		{"top level", "1 Overview", KindSectionHeading, "Overview", "1"},
		{"top level dotted", "3. Methodology", KindSectionHeading, "Methodology", "3"},
		{"sub level", "2.1 Revenue Growth", KindSubsectionHeading, "Revenue Growth", "2.1"},
		{"deep level collapses", "2.3.1 Details", KindSubsectionHeading, "Details", "2.3.1"},
		{"dash separator", "4-Appendix", KindSectionHeading, "Appendix", "4"},
		{"leading whitespace", "  5 Conclusions", KindSectionHeading, "Conclusions", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(makeLine(tt.text, 10, "Helvetica"), twoSizeProfile)
			if got.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.Text != tt.heading {
				t.Errorf("Text = %q, want %q", got.Text, tt.heading)
			}
			if got.Numbering != tt.numbering {
				t.Errorf("Numbering = %q, want %q", got.Numbering, tt.numbering)
			}
		})
	}
}

func TestClassifyNumberingEmptyTitle(t *testing.T) {
	c := NewClassifier()

	// When the remainder after the numbering token is empty, the full line
	// text is used as the heading text.
	got := c.Classify(makeLine("4-", 10, "Helvetica"), twoSizeProfile)
	if got.Kind != KindSectionHeading {
		t.Fatalf("Kind = %v, want section heading", got.Kind)
	}
	if got.Text != "4-" {
		t.Errorf("Text = %q, want %q", got.Text, "4-")
	}
	if got.Numbering != "4" {
		t.Errorf("Numbering = %q, want %q", got.Numbering, "4")
	}
}

func TestClassifyNumberingBeatsFontSize(t *testing.T) {
	c := NewClassifier()

	// "2.1 ..." at the document's largest size still classifies by its
	// numbering: the precedence is fixed.
	got := c.Classify(makeLine("2.1 Revenue Growth", 18, "Helvetica"), twoSizeProfile)
	if got.Kind != KindSubsectionHeading {
		t.Errorf("Kind = %v, want subsection heading", got.Kind)
	}
	if got.Numbering != "2.1" || got.Text != "Revenue Growth" {
		t.Errorf("got %+v, want numbering 2.1 with text stripped", got)
	}

	// And "1 Overview" at the largest size is a section heading with the
	// numbering stripped cleanly.
	got = c.Classify(makeLine("1 Overview", 18, "Helvetica"), twoSizeProfile)
	if got.Kind != KindSectionHeading || got.Text != "Overview" {
		t.Errorf("got %+v, want section heading %q", got, "Overview")
	}
}

func TestClassifySectionSize(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		size float64
		kind Kind
	}{
		{"at section size", 18, KindSectionHeading},
		{"within tolerance", 17.6, KindSectionHeading},
		{"at subsection size", 14, KindSubsectionHeading},
		{"subsection tolerance", 13.5, KindSubsectionHeading},
		{"body size", 10, KindParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(makeLine("Executive Summary", tt.size, "Helvetica"), twoSizeProfile)
			if got.Kind != tt.kind {
				t.Errorf("size %v: Kind = %v, want %v", tt.size, got.Kind, tt.kind)
			}
			if got.Text != "Executive Summary" {
				t.Errorf("Text = %q, want raw line text", got.Text)
			}
		})
	}
}

func TestClassifyNoProfile(t *testing.T) {
	c := NewClassifier()
	empty := FontProfile{}

	// With no font data the detector degrades to numbering and bold
	// classification; plain lines are paragraphs.
	got := c.Classify(makeLine("Some body text", 0, ""), empty)
	if got.Kind != KindParagraph {
		t.Errorf("Kind = %v, want paragraph", got.Kind)
	}

	got = c.Classify(makeLine("3.2 Costs", 0, ""), empty)
	if got.Kind != KindSubsectionHeading {
		t.Errorf("Kind = %v, want subsection heading from numbering", got.Kind)
	}

	got = c.Classify(makeLine("Key Figures", 0, "Arial-Bold"), empty)
	if got.Kind != KindSubsectionHeading {
		t.Errorf("Kind = %v, want subsection heading from bold fallback", got.Kind)
	}
}

func TestClassifyBoldShortLimit(t *testing.T) {
	c := NewClassifier()
	empty := FontProfile{}

	long := strings.Repeat("word ", 30) // well over 120 characters
	got := c.Classify(makeLine(long, 0, "Arial-Bold"), empty)
	if got.Kind != KindParagraph {
		t.Errorf("long bold line: Kind = %v, want paragraph", got.Kind)
	}
}

func TestClassifyBoldBelowThreshold(t *testing.T) {
	c := NewClassifier()

	// Bold but below the subsection reference size: stays a paragraph.
	got := c.Classify(makeLine("Note", 10, "Times-Bold"), twoSizeProfile)
	if got.Kind != KindParagraph {
		t.Errorf("Kind = %v, want paragraph", got.Kind)
	}
}

func TestClassifyParagraph(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(makeLine("Plain running text with no markers.", 10, "Helvetica"), twoSizeProfile)
	if got.Kind != KindParagraph {
		t.Fatalf("Kind = %v, want paragraph", got.Kind)
	}
	if got.Text != "Plain running text with no markers." {
		t.Errorf("Text = %q, want raw line text", got.Text)
	}
	if got.Numbering != "" {
		t.Errorf("Numbering = %q, want empty", got.Numbering)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindParagraph, "paragraph"},
		{KindSectionHeading, "section"},
		{KindSubsectionHeading, "subsection"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}
