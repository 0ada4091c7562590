package strata

// StructureOptions holds configuration for document structuring.
type StructureOptions struct {
	// OCR fallback for scanned pages and image descriptions
	ocrEnabled  bool
	ocrLanguage string

	// Table detection on page text
	detectTables bool

	// Heading size tolerance in points
	tolerance float64

	// Page-level parallelism; 1 means sequential
	workers int
}

// defaultOptions returns the default structuring options.
func defaultOptions() StructureOptions {
	return StructureOptions{
		ocrEnabled:   false,
		ocrLanguage:  "eng",
		detectTables: true,
		tolerance:    0.5,
		workers:      1,
	}
}

// clone creates a copy of StructureOptions.
func (o StructureOptions) clone() StructureOptions {
	return o
}
