package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/llm"
	"github.com/jonathan/jobboard/internal/llm/llmtest"
)

func TestNew(t *testing.T) {
	fake := llmtest.NewFake("")

	e, err := New(Options{LLM: fake})
	require.NoError(t, err)
	assert.Equal(t, BackendGemini, e.Name())

	e, err = New(Options{Backend: "Tesseract"})
	require.NoError(t, err)
	assert.Equal(t, BackendTesseract, e.Name())

	_, err = New(Options{Backend: "gemini"})
	assert.Error(t, err)

	_, err = New(Options{Backend: "abbyy"})
	assert.Error(t, err)
}

func TestGeminiExtractor_ExtractText(t *testing.T) {
	fake := llmtest.NewFake("```\nJane Doe\nSoftware Engineer\n```\n")
	e := NewGeminiExtractor(fake, llm.TierLite)

	text, err := e.ExtractText(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSoftware Engineer", text)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "GenerateFromImage", calls[0].Method)
	assert.Equal(t, "image/png", calls[0].MIMEType)
	assert.Equal(t, []byte("png-bytes"), calls[0].Image)
	assert.Contains(t, calls[0].Prompt, "Transcribe")
}

func TestGeminiExtractor_Error(t *testing.T) {
	fake := &llmtest.Fake{Errors: []error{errors.New("quota exceeded")}}
	e := NewGeminiExtractor(fake, llm.TierLite)

	_, err := e.ExtractText(context.Background(), []byte("x"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-tesseract")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestTesseractExtractor_ReadsStdout(t *testing.T) {
	// echoes stdin back so the test can check the image was streamed
	path := writeScript(t, `cat; echo; echo "lang=$4"`)
	e := NewTesseractExtractor(path, "deu")

	text, err := e.ExtractText(context.Background(), []byte("Jane Doe"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nlang=deu", text)
}

func TestTesseractExtractor_Failure(t *testing.T) {
	path := writeScript(t, `echo "Error in pixReadMem" >&2; exit 1`)
	e := NewTesseractExtractor(path, "")

	_, err := e.ExtractText(context.Background(), []byte("x"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pixReadMem")
}

func TestTesseractExtractor_MissingBinary(t *testing.T) {
	e := NewTesseractExtractor(filepath.Join(t.TempDir(), "nope"), "")
	_, err := e.ExtractText(context.Background(), []byte("x"), "image/png")
	assert.Error(t, err)
}
