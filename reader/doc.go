// Package reader opens PDF documents and converts them into the engine's
// page model.
//
// Rendering is delegated to MuPDF via go-fitz. For each page the reader
// requests MuPDF's structured HTML output and parses it into text blocks
// with per-span font metadata, which is what the layout engine classifies
// on. Embedded raster images arrive as base64 data URIs inside the same
// HTML and are decoded into the page's image list. Plain text extraction
// backs the OCR-fallback decision, and full-page rasterization feeds the
// OCR engine for pages without extractable text.
//
// All extracted text is normalized to Unicode NFKC form, which folds
// ligatures and compatibility characters produced by PDF font encodings
// into their plain equivalents.
package reader
