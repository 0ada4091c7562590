package layout

import (
	"testing"

	"github.com/tgrayson/strata/model"
)

// makeDoc builds a single-page document whose spans use the given sizes.
func makeDoc(sizes ...float64) *model.Document {
	var lines []model.Line
	for _, s := range sizes {
		lines = append(lines, model.Line{Spans: []model.Span{{Text: "x", Size: s}}})
	}
	return &model.Document{Pages: []*model.Page{
		{Number: 1, Blocks: []model.Block{model.TextBlock{Lines: lines}}},
	}}
}

func TestAnalyzeProfileOrdering(t *testing.T) {
	profile := AnalyzeProfile(makeDoc(10, 18, 14, 10, 14))

	want := []float64{18, 14, 10}
	if len(profile.Sizes) != len(want) {
		t.Fatalf("Sizes = %v, want %v", profile.Sizes, want)
	}
	for i := range want {
		if profile.Sizes[i] != want[i] {
			t.Errorf("Sizes[%d] = %v, want %v", i, profile.Sizes[i], want[i])
		}
	}

	section, ok := profile.SectionSize()
	if !ok || section != 18 {
		t.Errorf("SectionSize() = %v, %v; want 18, true", section, ok)
	}
	sub, ok := profile.SubsectionSize()
	if !ok || sub != 14 {
		t.Errorf("SubsectionSize() = %v, %v; want 14, true", sub, ok)
	}
	if section <= sub {
		t.Errorf("sectionSize must be strictly greater than subsectionSize")
	}
}

func TestAnalyzeProfileRounding(t *testing.T) {
	// 11.96 and 12.04 round to 12.0 and deduplicate.
	profile := AnalyzeProfile(makeDoc(11.96, 12.04, 18.33))

	if len(profile.Sizes) != 2 {
		t.Fatalf("Sizes = %v, want two distinct rounded sizes", profile.Sizes)
	}
	if profile.Sizes[0] != 18.3 || profile.Sizes[1] != 12.0 {
		t.Errorf("Sizes = %v, want [18.3 12.0]", profile.Sizes)
	}
}

func TestAnalyzeProfileEmpty(t *testing.T) {
	profile := AnalyzeProfile(&model.Document{})

	if _, ok := profile.SectionSize(); ok {
		t.Error("SectionSize() should report no size for an empty document")
	}
	if _, ok := profile.SubsectionSize(); ok {
		t.Error("SubsectionSize() should report no size for an empty document")
	}
}

func TestAnalyzeProfileSingleSize(t *testing.T) {
	profile := AnalyzeProfile(makeDoc(12, 12, 12))

	if section, ok := profile.SectionSize(); !ok || section != 12 {
		t.Errorf("SectionSize() = %v, %v; want 12, true", section, ok)
	}
	if _, ok := profile.SubsectionSize(); ok {
		t.Error("SubsectionSize() should be unset with one distinct size")
	}
}

func TestAnalyzeProfileSpansAcrossPages(t *testing.T) {
	// The profile is a whole-document pre-pass: the largest size may
	// appear on a later page only.
	doc := &model.Document{Pages: []*model.Page{
		{Number: 1, Blocks: []model.Block{model.TextBlock{Lines: []model.Line{
			{Spans: []model.Span{{Text: "body", Size: 10}}},
		}}}},
		{Number: 2, Blocks: []model.Block{model.TextBlock{Lines: []model.Line{
			{Spans: []model.Span{{Text: "title", Size: 24}}},
		}}}},
	}}

	profile := AnalyzeProfile(doc)
	if section, _ := profile.SectionSize(); section != 24 {
		t.Errorf("SectionSize() = %v, want 24", section)
	}
}

func TestAnalyzeProfileIgnoresNonTextBlocks(t *testing.T) {
	doc := &model.Document{Pages: []*model.Page{
		{Number: 1, Blocks: []model.Block{model.ImageBlock{}, model.OtherBlock{}}},
	}}

	profile := AnalyzeProfile(doc)
	if len(profile.Sizes) != 0 {
		t.Errorf("Sizes = %v, want empty", profile.Sizes)
	}
}
