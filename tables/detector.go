package tables

import (
	"regexp"
	"strings"
)

// Grid is a detected table as cell strings in row-major order.
type Grid [][]string

// Detector finds tabular regions in layout-preserving page text.
type Detector struct {
	// MinRows is the minimum number of consecutive rows to form a grid.
	// Default: 2
	MinRows int

	// MinCols is the minimum number of columns a row must split into to
	// count as tabular.
	// Default: 2
	MinCols int
}

// NewDetector creates a detector with default settings.
func NewDetector() *Detector {
	return &Detector{
		MinRows: 2,
		MinCols: 2,
	}
}

// alignedGap matches the cell separators of whitespace-aligned tables:
// two or more spaces, or any run containing a tab.
var alignedGap = regexp.MustCompile(`[ ]{2,}|[ ]*\t[ \t]*`)

// DetectGrids finds all table grids in the given page text. The aligned
// flavor is tried first; when it yields nothing, the delimited flavor is
// retried on the same text. Pages without tables yield an empty result,
// never an error.
func (d *Detector) DetectGrids(text string) []Grid {
	lines := strings.Split(text, "\n")

	grids := d.detect(lines, splitAligned)
	if len(grids) == 0 {
		grids = d.detect(lines, splitDelimited)
	}
	return grids
}

// detect scans lines for maximal runs of rows with a consistent column
// count, using the given row splitter.
func (d *Detector) detect(lines []string, split func(string) []string) []Grid {
	var grids []Grid
	var current Grid

	flush := func() {
		if len(current) >= d.MinRows {
			grids = append(grids, current)
		}
		current = nil
	}

	for _, line := range lines {
		cells := split(line)
		if len(cells) < d.MinCols {
			flush()
			continue
		}
		if len(current) > 0 && len(current[len(current)-1]) != len(cells) {
			// Column count changed: the previous run ends here.
			flush()
		}
		current = append(current, cells)
	}
	flush()

	return grids
}

// splitAligned splits a row on runs of two or more spaces (or tabs).
func splitAligned(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	parts := alignedGap.Split(line, -1)
	return trimCells(parts)
}

// splitDelimited splits a row on tab or pipe delimiters.
func splitDelimited(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	if line == "" {
		return nil
	}
	var parts []string
	if strings.Contains(line, "|") {
		parts = strings.Split(line, "|")
	} else {
		parts = strings.Split(line, "\t")
	}
	return trimCells(parts)
}

func trimCells(parts []string) []string {
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}
