// Package resume runs uploaded resume images through OCR and structured
// extraction.
package resume

import (
	"context"
	"errors"
	"mime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jonathan/jobboard/internal/llm"
	"github.com/jonathan/jobboard/internal/ocr"
	"github.com/jonathan/jobboard/internal/parsing"
	"github.com/jonathan/jobboard/internal/prompts"
	"github.com/jonathan/jobboard/internal/types"
)

const (
	// DefaultMinTextLength is the shortest OCR result treated as a resume.
	DefaultMinTextLength = 50
	// PreviewLength bounds the text echoed back by ProcessProfile.
	PreviewLength = 500
)

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// Upload is one resume image as received from the client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Archive stores accepted uploads. Failures never fail the request.
type Archive interface {
	Store(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// ProgressEvent reports a finished pipeline stage.
type ProgressEvent struct {
	Stage    string
	Message  string
	Duration time.Duration
}

// ProgressCallback receives progress events.
type ProgressCallback func(ProgressEvent)

// ApplicationResult is the outcome of ProcessApplication.
type ApplicationResult struct {
	Data          types.ApplicationAutofill
	ExtractedText string
}

// ProfileResult is the outcome of ProcessProfile. ExtractedText is a preview.
type ProfileResult struct {
	Data          *types.ExtractedProfileData
	ExtractedText string
}

// Pipeline sequences validation, OCR, extraction, parsing and sanitization.
// It is safe for concurrent use.
type Pipeline struct {
	ocr           ocr.TextExtractor
	llm           llm.Client
	archive       Archive
	log           zerolog.Logger
	minTextLength int
	callTimeout   time.Duration
	retry         llm.RetryConfig
	onProgress    ProgressCallback
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithArchive stores accepted uploads in a.
func WithArchive(a Archive) Option { return func(p *Pipeline) { p.archive = a } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(p *Pipeline) { p.log = l } }

// WithMinTextLength overrides DefaultMinTextLength.
func WithMinTextLength(n int) Option { return func(p *Pipeline) { p.minTextLength = n } }

// WithCallTimeout bounds each OCR and model call. Zero means no bound.
func WithCallTimeout(d time.Duration) Option { return func(p *Pipeline) { p.callTimeout = d } }

// WithRetry retries transient OCR and model failures.
func WithRetry(rc llm.RetryConfig) Option { return func(p *Pipeline) { p.retry = rc } }

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option { return func(p *Pipeline) { p.onProgress = cb } }

// NewPipeline creates a pipeline. By default calls are not retried.
func NewPipeline(extractor ocr.TextExtractor, client llm.Client, opts ...Option) *Pipeline {
	p := &Pipeline{
		ocr:           extractor,
		llm:           client,
		log:           zerolog.Nop(),
		minTextLength: DefaultMinTextLength,
		retry:         llm.NoRetry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessApplication extracts contact details and a generated cover letter.
func (p *Pipeline) ProcessApplication(ctx context.Context, up *Upload) (*ApplicationResult, error) {
	text, err := p.readText(ctx, up)
	if err != nil {
		return nil, err
	}

	prompt := llm.BuildExtractionPrompt(llm.ApplicationAutofillSchema(), text)
	raw, err := p.extract(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, err
	}

	obj, err := parsing.ParseApplicationResponse(raw)
	if err != nil {
		p.logParseError(err)
		return nil, err
	}

	return &ApplicationResult{
		Data:          parsing.SanitizeApplication(obj),
		ExtractedText: text,
	}, nil
}

// ProcessProfile extracts full profile data for later reconciliation.
func (p *Pipeline) ProcessProfile(ctx context.Context, up *Upload) (*ProfileResult, error) {
	text, err := p.readText(ctx, up)
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.Render("resume.json", "extract-profile", map[string]string{"ResumeText": text})
	if err != nil {
		return nil, err
	}
	raw, err := p.extract(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	obj, err := parsing.ParseProfileResponse(raw)
	if err != nil {
		p.logParseError(err)
		return nil, err
	}

	data := parsing.SanitizeProfile(obj)
	p.progress("sanitize", "profile data cleaned", 0)
	p.log.Info().
		Int("experience", len(data.Experience)).
		Int("education", len(data.Education)).
		Int("projects", len(data.Projects)).
		Int("skills", len(data.Skills)).
		Msg("profile extracted")

	return &ProfileResult{
		Data:          data,
		ExtractedText: Truncate(text, PreviewLength),
	}, nil
}

// readText validates the upload, runs OCR and enforces the minimum length.
func (p *Pipeline) readText(ctx context.Context, up *Upload) (string, error) {
	contentType, err := validateUpload(up)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := p.call(ctx, func(ctx context.Context) (string, error) {
		return p.ocr.ExtractText(ctx, up.Data, contentType)
	})
	if err != nil {
		p.log.Error().Err(err).Str("engine", p.ocr.Name()).Msg("OCR failed")
		return "", &UpstreamServiceError{Service: "ocr", Cause: err}
	}
	text = strings.TrimSpace(text)
	p.progress("ocr", "text extracted", time.Since(start))

	if n := utf8.RuneCountInString(text); n < p.minTextLength {
		p.log.Warn().Int("chars", n).Str("file", up.Filename).Msg("insufficient OCR text")
		return "", &InsufficientTextError{Length: n, Min: p.minTextLength}
	}

	if p.archive != nil {
		key, err := p.archive.Store(ctx, up.Filename, contentType, up.Data)
		if err != nil {
			p.log.Warn().Err(err).Msg("resume archive failed")
		} else {
			p.log.Debug().Str("key", key).Msg("resume archived")
		}
	}
	return text, nil
}

func (p *Pipeline) extract(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	start := time.Now()
	raw, err := p.call(ctx, func(ctx context.Context) (string, error) {
		return p.llm.GenerateJSON(ctx, prompt, tier)
	})
	if err != nil {
		p.log.Error().Err(err).Str("model", p.llm.GetModel(tier)).Msg("extraction failed")
		return "", &UpstreamServiceError{Service: "extraction", Cause: err}
	}
	p.progress("extract", "model responded", time.Since(start))
	return raw, nil
}

// call runs fn with the per-call timeout and retry policy.
func (p *Pipeline) call(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	return llm.RetryDo(ctx, p.retry, func() (string, error) {
		callCtx := ctx
		if p.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, p.callTimeout)
			defer cancel()
		}
		return fn(callCtx)
	})
}

func (p *Pipeline) logParseError(err error) {
	ev := p.log.Error().Err(err)
	var pe *parsing.ParseError
	if errors.As(err, &pe) {
		ev = ev.Str("output", pe.Snippet)
	}
	ev.Msg("model output rejected")
}

func (p *Pipeline) progress(stage, msg string, d time.Duration) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{Stage: stage, Message: msg, Duration: d})
	}
}

// validateUpload returns the normalized media type of an acceptable upload.
func validateUpload(up *Upload) (string, error) {
	if up == nil || len(up.Data) == 0 {
		return "", &InputValidationError{Message: MsgFileRequired}
	}
	mediaType, _, err := mime.ParseMediaType(up.ContentType)
	if err != nil || !allowedTypes[strings.ToLower(mediaType)] {
		return "", &InputValidationError{Message: MsgInvalidFileType}
	}
	return strings.ToLower(mediaType), nil
}

// Truncate shortens s to n characters, appending "..." when it cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
