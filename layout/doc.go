// Package layout implements document structure reconstruction: the
// heuristics that classify lines of text as section headings, subsection
// headings, or body paragraphs, and assemble them into an ordered per-page
// content stream.
//
// # Font Profile
//
// [AnalyzeProfile] scans the whole document's spans once and derives two
// reference thresholds from the font-size distribution:
//
//	profile := layout.AnalyzeProfile(doc)
//	sectionSize, ok := profile.SectionSize()
//
// The profile is a whole-document precondition: classification on one page
// may depend on sizes that appear only on another, so it cannot be computed
// incrementally per page.
//
// # Classification
//
// The [Classifier] applies an ordered chain of rules to each line, first
// match wins:
//
//  1. numbering pattern ("2.3.1 Title")
//  2. section font-size threshold
//  3. subsection font-size threshold
//  4. bold-short fallback
//  5. plain paragraph
//
// The ordering is part of the contract: explicit numbering is a stronger,
// language-independent signal than visual styling.
//
// # Page Building
//
// The [PageBuilder] walks a page's blocks in document order, classifies each
// line, maintains the current section/subsection context, and buffers body
// text until a flush emits it as a single paragraph. All state is scoped to
// one Build call; headings never persist across pages.
package layout
