// Package ocr turns resume images into plain text.
//
// Two engines are available: Gemini vision (default, no local install) and
// the tesseract command line tool.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/jobboard/internal/llm"
)

// Backend names accepted by New.
const (
	BackendGemini    = "gemini"
	BackendTesseract = "tesseract"
)

// TextExtractor extracts text from a single image.
type TextExtractor interface {
	// ExtractText returns the text found in image. contentType is the
	// normalized MIME type, e.g. "image/png".
	ExtractText(ctx context.Context, image []byte, contentType string) (string, error)
	// Name identifies the engine in logs.
	Name() string
}

// Options configures New.
type Options struct {
	Backend       string
	LLM           llm.Client
	TesseractPath string
	TesseractLang string
}

// New builds the extractor for the configured backend.
func New(opts Options) (TextExtractor, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendGemini:
		if opts.LLM == nil {
			return nil, fmt.Errorf("gemini OCR backend requires an LLM client")
		}
		return NewGeminiExtractor(opts.LLM, llm.TierLite), nil
	case BackendTesseract:
		return NewTesseractExtractor(opts.TesseractPath, opts.TesseractLang), nil
	default:
		return nil, fmt.Errorf("unknown OCR backend %q", opts.Backend)
	}
}
