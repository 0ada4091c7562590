//go:build !ocr

// Package ocr provides the optical character recognition collaborator used
// for scanned pages and embedded images.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. New returns ErrOCRNotEnabled and the engine proceeds without OCR.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"errors"
	"image"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client. It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// Recognize returns an error indicating OCR support is not enabled.
func (c *Client) Recognize(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// RecognizeImage returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeImage(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
