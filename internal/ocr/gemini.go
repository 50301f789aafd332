package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/jobboard/internal/llm"
	"github.com/jonathan/jobboard/internal/prompts"
)

// GeminiExtractor transcribes images with a multimodal model.
type GeminiExtractor struct {
	client llm.Client
	tier   llm.ModelTier
	prompt string
}

// NewGeminiExtractor creates an extractor using client at the given tier.
func NewGeminiExtractor(client llm.Client, tier llm.ModelTier) *GeminiExtractor {
	return &GeminiExtractor{
		client: client,
		tier:   tier,
		prompt: prompts.MustGet("resume.json", "transcribe-image"),
	}
}

// Name implements TextExtractor.
func (g *GeminiExtractor) Name() string { return BackendGemini }

// ExtractText implements TextExtractor.
func (g *GeminiExtractor) ExtractText(ctx context.Context, image []byte, contentType string) (string, error) {
	text, err := g.client.GenerateFromImage(ctx, g.prompt, image, contentType, g.tier)
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}
	return strings.TrimSpace(llm.CleanJSONBlock(text)), nil
}
