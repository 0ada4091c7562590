package layout

import (
	"sort"

	"github.com/tgrayson/strata/model"
)

// FontProfile holds the document-wide font-size distribution used to infer
// heading styles. It is computed once at document-open time and read-only
// afterward.
type FontProfile struct {
	// Sizes are the distinct rounded span sizes found anywhere in the
	// document, sorted strictly descending.
	Sizes []float64
}

// SectionSize returns the largest font size present in the document. The
// second return is false when the document contains no text spans at all.
func (p FontProfile) SectionSize() (float64, bool) {
	if len(p.Sizes) == 0 {
		return 0, false
	}
	return p.Sizes[0], true
}

// SubsectionSize returns the second-largest distinct font size. The second
// return is false when fewer than two distinct sizes exist.
func (p FontProfile) SubsectionSize() (float64, bool) {
	if len(p.Sizes) < 2 {
		return 0, false
	}
	return p.Sizes[1], true
}

// AnalyzeProfile scans every span in every text block across the whole
// document and builds the font-size distribution. Sizes are rounded to one
// decimal place and deduplicated. This is a single full-document pre-pass
// with no side effects.
func AnalyzeProfile(doc *model.Document) FontProfile {
	seen := make(map[float64]bool)

	for _, page := range doc.Pages {
		if page == nil {
			continue
		}
		for _, block := range page.Blocks {
			tb, ok := block.(model.TextBlock)
			if !ok {
				continue
			}
			for _, line := range tb.Lines {
				for _, span := range line.Spans {
					seen[span.RoundedSize()] = true
				}
			}
		}
	}

	sizes := make([]float64, 0, len(seen))
	for s := range seen {
		sizes = append(sizes, s)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	return FontProfile{Sizes: sizes}
}
