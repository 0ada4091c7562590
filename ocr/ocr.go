//go:build ocr

// Package ocr provides the optical character recognition collaborator used
// for scanned pages and embedded images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system and the "ocr" build tag:
//
//	go build -tags ocr
//
// On macOS, install Tesseract via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the build tag a stub implementation is compiled instead, whose
// constructor returns [ErrOCRNotEnabled]; the engine treats that as OCR
// being unavailable and proceeds without it.
package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ErrOCRNotEnabled is returned by the stub build when OCR support was not
// compiled in. It is declared in both builds so callers can test for it
// unconditionally.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client wraps Tesseract for OCR operations. A Client is not safe for
// concurrent use; callers that parallelize must serialize access.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. The client should be closed when no longer
// needed to release Tesseract resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources. It is safe to call on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Recognize performs OCR on encoded image data (PNG, TIFF, JPEG, etc.) and
// returns the recognized text with surrounding whitespace trimmed. An empty
// string with a nil error means the image contained no recognizable text.
func (c *Client) Recognize(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizeImage performs OCR on a decoded image by encoding it as PNG
// first. This is the path used for full-page renders on pages with no
// extractable text.
func (c *Client) RecognizeImage(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding page image: %w", err)
	}
	return c.Recognize(buf.Bytes())
}

// SetLanguage sets the language(s) for OCR recognition. Multiple languages
// can be specified as a "+" separated string (e.g. "eng+fra"). Default is
// "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
