package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/llm"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/ocr"
	"github.com/jonathan/jobboard/internal/resume"
)

// loadConfig resolves the config file, environment and defaults.
func loadConfig() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	log := observability.NewLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}, os.Stderr)
	return cfg, log, nil
}

// newExtraction builds the model client, OCR engine and pipeline. The
// returned client must be closed by the caller.
func newExtraction(ctx context.Context, cfg config.Config, log zerolog.Logger, opts ...resume.Option) (*resume.Pipeline, llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	llmConfig := llm.DefaultConfig().
		WithModel(llm.TierStandard, cfg.Model).
		WithModel(llm.TierLite, cfg.OCRModel)
	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	extractor, err := ocr.New(ocr.Options{
		Backend:       cfg.OCRBackend,
		LLM:           client,
		TesseractPath: cfg.TesseractPath,
		TesseractLang: cfg.TesseractLang,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	retry := llm.NoRetry
	if cfg.MaxRetries > 0 {
		retry = llm.DefaultRetryConfig
		retry.MaxRetries = cfg.MaxRetries
	}

	base := []resume.Option{
		resume.WithLogger(log),
		resume.WithMinTextLength(cfg.MinTextLength),
		resume.WithCallTimeout(cfg.CallTimeout()),
		resume.WithRetry(retry),
	}
	pipeline := resume.NewPipeline(extractor, client, append(base, opts...)...)

	log.Debug().
		Str("ocr", extractor.Name()).
		Str("model", client.GetModel(llm.TierStandard)).
		Int("max_retries", retry.MaxRetries).
		Msg("extraction pipeline ready")

	return pipeline, client, nil
}
