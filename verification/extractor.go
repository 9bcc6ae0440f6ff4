package verification

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// ExtractionError marks a document that could not be parsed, rendered or
// read by OCR. It is user-correctable: the caller should ask for a re-upload.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return "extraction failed: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// TextExtractor produces raw text from an uploaded document. Implementations
// must not mutate the input bytes.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// OCRExtractor extracts text with tesseract. PDFs are rendered page by page
// to PNG first; plain images are fed to OCR directly. Extraction is a slow,
// blocking call — run it before opening any transaction.
type OCRExtractor struct {
	Lang string // tesseract language model, e.g. "eng"
	DPI  float64
}

// NewOCRExtractor returns an extractor using the given tesseract language
func NewOCRExtractor(lang string) *OCRExtractor {
	return &OCRExtractor{Lang: lang, DPI: 150}
}

// Extract implements TextExtractor
func (o *OCRExtractor) Extract(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ExtractionError{Reason: "empty document"}
	}
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return o.extractPDF(data)
	}
	return o.ocrImage(data)
}

// extractPDF renders each page to an image and concatenates the per-page
// OCR output in page order
func (o *OCRExtractor) extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", &ExtractionError{Reason: "could not open PDF", Err: err}
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return "", &ExtractionError{Reason: "PDF has no pages"}
	}

	var text strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		png, err := doc.ImagePNG(page, o.DPI)
		if err != nil {
			return "", &ExtractionError{Reason: fmt.Sprintf("could not render page %d", page+1), Err: err}
		}
		pageText, err := o.ocrImage(png)
		if err != nil {
			return "", err
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}
	return text.String(), nil
}

// ocrImage runs tesseract over a single raster image
func (o *OCRExtractor) ocrImage(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if o.Lang != "" {
		if err := client.SetLanguage(o.Lang); err != nil {
			return "", &ExtractionError{Reason: "unsupported OCR language " + o.Lang, Err: err}
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", &ExtractionError{Reason: "could not read image", Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return "", &ExtractionError{Reason: "OCR failed", Err: err}
	}
	return text, nil
}
