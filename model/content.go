package model

import "encoding/json"

// ContentItem is one typed element of a page's reconstructed structure.
// It is a closed sum: the only implementations are Heading, Paragraph,
// Chart, and Table. Each variant marshals itself with a "type"
// discriminator so the output schema is stable across implementations.
type ContentItem interface {
	isContentItem()
}

// Heading is a detected section (level 1) or subsection (level 2) heading.
// Only these two levels are ever emitted.
type Heading struct {
	Level int
	Text  string
}

func (Heading) isContentItem() {}

// MarshalJSON implements json.Marshaler.
func (h Heading) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Level int    `json:"level"`
		Text  string `json:"text"`
	}{"heading", h.Level, h.Text})
}

// Paragraph is a run of body text tagged with the section and subsection
// context that was active when it was flushed. Nil context fields
// serialize as JSON null.
type Paragraph struct {
	Section    *string
	SubSection *string
	Text       string
}

func (Paragraph) isContentItem() {}

// MarshalJSON implements json.Marshaler.
func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string  `json:"type"`
		Section    *string `json:"section"`
		SubSection *string `json:"sub_section"`
		Text       string  `json:"text"`
	}{"paragraph", p.Section, p.SubSection, p.Text})
}

// Chart is an image-derived content item: either an in-flow placeholder for
// an image block, or a page image resolved by the image pipeline. The
// description carries OCR text when available.
type Chart struct {
	Section     *string
	Description *string
	ChartData   [][]string
}

func (Chart) isContentItem() {}

// MarshalJSON implements json.Marshaler.
func (c Chart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string     `json:"type"`
		Section     *string    `json:"section"`
		Description *string    `json:"description"`
		ChartData   [][]string `json:"chart_data"`
	}{"chart", c.Section, c.Description, c.ChartData})
}

// Table is a tabular region extracted from the page, as a grid of cell
// strings in row-major order.
type Table struct {
	Section     *string
	Description *string
	TableData   [][]string
}

func (Table) isContentItem() {}

// MarshalJSON implements json.Marshaler.
func (t Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string     `json:"type"`
		Section     *string    `json:"section"`
		Description *string    `json:"description"`
		TableData   [][]string `json:"table_data"`
	}{"table", t.Section, t.Description, t.TableData})
}

// PageResult is the reconstructed content stream for one page.
type PageResult struct {
	PageNumber int           `json:"page_number"`
	Content    []ContentItem `json:"content"`
}

/// DocumentResult is the full reconstructed document: one entry per source
// page, ordered by increasing page number with no gaps.
type DocumentResult struct {
	Pages []PageResult `json:"pages"`
}

// String returns a pointer to s, for populating optional content fields.
func String(s string) *string {
	return &s
}
