// Package model defines the data types shared across the strata engine:
// the raw span/line/block tree produced by the layout parser, and the
// typed content stream produced by structure reconstruction.
//
// # Input Model
//
// A [Document] is an ordered list of pages. Each [Page] holds its blocks in
// document order plus the raster images embedded on the page. Blocks form a
// closed sum: [TextBlock], [ImageBlock], or [OtherBlock]. Text blocks contain
// lines of spans; a [Span] is the smallest text unit with uniform font
// styling.
//
// # Output Model
//
// A [DocumentResult] is an ordered list of per-page content streams. Each
// [ContentItem] is one of [Heading], [Paragraph], [Chart], or [Table], and
// serializes to JSON with a "type" discriminator:
//
//	{"type": "heading", "level": 1, "text": "Overview"}
//	{"type": "paragraph", "section": "Overview", "sub_section": null, "text": "..."}
//
// Content items are immutable once emitted and owned by the page result that
// contains them.
package model
