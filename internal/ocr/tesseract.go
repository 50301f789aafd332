package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// TesseractExtractor shells out to the tesseract CLI, streaming the image
// on stdin and reading text from stdout.
type TesseractExtractor struct {
	path string
	lang string
}

// NewTesseractExtractor creates an extractor. Empty path and lang default to
// "tesseract" on PATH and "eng".
func NewTesseractExtractor(path, lang string) *TesseractExtractor {
	if path == "" {
		path = "tesseract"
	}
	if lang == "" {
		lang = "eng"
	}
	return &TesseractExtractor{path: path, lang: lang}
}

// Name implements TextExtractor.
func (t *TesseractExtractor) Name() string { return BackendTesseract }

// ExtractText implements TextExtractor.
func (t *TesseractExtractor) ExtractText(ctx context.Context, image []byte, _ string) (string, error) {
	cmd := exec.CommandContext(ctx, t.path, "stdin", "stdout", "-l", t.lang)
	cmd.Stdin = bytes.NewReader(image)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
