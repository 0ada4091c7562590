package strata

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal problem encountered while structuring a
// document. Collaborator failures (table detection, OCR, image decoding,
// page parsing) are absorbed as warnings; only failing to open the source
// document aborts processing.
type Warning struct {
	// Page is the 1-indexed page the warning applies to, or 0 for
	// document-level warnings.
	Page int

	// Stage names the processing step that produced the warning, e.g.
	// "parse", "ocr", "tables".
	Stage string

	// Message describes what went wrong.
	Message string
}

// String returns a human-readable form of the warning.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d [%s]: %s", w.Page, w.Stage, w.Message)
	}
	return fmt.Sprintf("[%s]: %s", w.Stage, w.Message)
}

// FormatWarnings joins warnings into a single string, one per line.
// Returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
