// Command strata reconstructs the logical structure of a PDF and writes
// it as JSON.
//
// Usage:
//
//	strata [flags] input.pdf [output.json]
//
// The output path defaults to output.json.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tgrayson/strata"
)

func main() {
	var (
		ocrEnabled = flag.Bool("ocr", false, "enable OCR fallback for scanned pages and images")
		ocrLang    = flag.String("lang", "eng", "Tesseract language code for OCR")
		noTables   = flag.Bool("no-tables", false, "disable table detection")
		workers    = flag.Int("workers", 1, "number of pages processed concurrently")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] input.pdf [output.json]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)
	output := "output.json"
	if flag.NArg() > 1 {
		output = flag.Arg(1)
	}

	ext := strata.Open(input).Workers(*workers)
	if *ocrEnabled {
		ext = ext.OCRLanguage(*ocrLang)
	}
	if *noTables {
		ext = ext.DisableTables()
	}

	data, warnings, err := ext.JSONIndent()
	if err != nil {
		log.Error("structuring failed", "input", input, "error", err)
		os.Exit(1)
	}

	for _, w := range warnings {
		log.Warn("structuring warning", "page", w.Page, "stage", w.Stage, "message", w.Message)
	}

	if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
		log.Error("writing output", "path", output, "error", err)
		os.Exit(1)
	}

	log.Debug("done", "input", input, "output", output, "bytes", len(data))
	fmt.Printf("Saved structured JSON to %s\n", output)
}
