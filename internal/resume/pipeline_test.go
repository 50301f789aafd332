package resume

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jonathan/jobboard/internal/llm"
	"github.com/jonathan/jobboard/internal/llm/llmtest"
	"github.com/jonathan/jobboard/internal/parsing"
	"github.com/jonathan/jobboard/internal/types"
)

const scenarioText = "John Doe Software Engineer at Acme Corp 2019-2022 skills: React, PostgreSQL"

const scenarioJSON = `Here is the extracted data:
{
  "personalInfo": {"name": "John Doe"},
  "experience": [{"jobTitle": "Software Engineer", "company": "Acme Corp", "startDate": "2019", "endDate": "2022"}],
  "skills": ["React", "PostgreSQL"]
}`

type fakeOCR struct {
	text  string
	err   error
	block bool
	calls int
	mu    sync.Mutex
}

func (f *fakeOCR) Name() string { return "fake" }

func (f *fakeOCR) ExtractText(ctx context.Context, _ []byte, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.text, f.err
}

type fakeArchive struct {
	err  error
	keys []string
}

func (a *fakeArchive) Store(_ context.Context, filename, _ string, _ []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, "resumes/"+filename)
	return "resumes/" + filename, nil
}

func pngUpload() *Upload {
	return &Upload{Filename: "cv.png", ContentType: "image/png", Data: []byte("\x89PNG...")}
}

func TestProcessProfile_Scenario(t *testing.T) {
	o := &fakeOCR{text: scenarioText}
	model := llmtest.NewFake(scenarioJSON)
	p := NewPipeline(o, model)

	res, err := p.ProcessProfile(context.Background(), pngUpload())
	require.NoError(t, err)

	require.Len(t, res.Data.Experience, 1)
	assert.Equal(t, "Software Engineer", res.Data.Experience[0].JobTitle)
	require.Len(t, res.Data.Skills, 2)
	assert.Equal(t, types.CategoryFramework, res.Data.Skills[0].Category)
	assert.Equal(t, types.CategoryDatabase, res.Data.Skills[1].Category)
	assert.Equal(t, scenarioText, res.ExtractedText)

	calls := model.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, scenarioText)
	assert.Equal(t, llm.TierStandard, calls[0].Tier)
}

func TestProcess_RejectsShortTextWithoutCallingModel(t *testing.T) {
	for _, text := range []string{"", "   ", "John Doe", strings.Repeat("a", 49), "  " + strings.Repeat("b", 49) + "  \n"} {
		o := &fakeOCR{text: text}
		model := llmtest.NewFake(scenarioJSON)
		p := NewPipeline(o, model)

		_, err := p.ProcessProfile(context.Background(), pngUpload())
		var ite *InsufficientTextError
		require.ErrorAs(t, err, &ite)

		_, err = p.ProcessApplication(context.Background(), pngUpload())
		require.ErrorAs(t, err, &ite)

		assert.Empty(t, model.Calls(), "model must not be called for %q", text)
	}
}

func TestProcess_AcceptsExactlyMinLength(t *testing.T) {
	o := &fakeOCR{text: strings.Repeat("é", DefaultMinTextLength)}
	p := NewPipeline(o, llmtest.NewFake(`{"name": "x"}`))

	_, err := p.ProcessApplication(context.Background(), pngUpload())
	assert.NoError(t, err)
}

func TestProcess_RejectsBadUploadsBeforeOCR(t *testing.T) {
	tests := []struct {
		name   string
		upload *Upload
		msg    string
	}{
		{"nil upload", nil, MsgFileRequired},
		{"empty data", &Upload{ContentType: "image/png"}, MsgFileRequired},
		{"pdf", &Upload{ContentType: "application/pdf", Data: []byte("%PDF")}, MsgInvalidFileType},
		{"gif", &Upload{ContentType: "image/gif", Data: []byte("GIF8")}, MsgInvalidFileType},
		{"missing type", &Upload{Data: []byte("x")}, MsgInvalidFileType},
		{"garbage type", &Upload{ContentType: "png", Data: []byte("x")}, MsgInvalidFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &fakeOCR{text: scenarioText}
			p := NewPipeline(o, llmtest.NewFake(scenarioJSON))

			_, err := p.ProcessProfile(context.Background(), tt.upload)
			var ive *InputValidationError
			require.ErrorAs(t, err, &ive)
			assert.Equal(t, tt.msg, ive.Message)
			assert.Zero(t, o.calls)
		})
	}
}

func TestValidateUpload_NormalizesType(t *testing.T) {
	for _, ct := range []string{"image/PNG", "image/jpeg; charset=binary", "image/jpg", "IMAGE/WEBP"} {
		_, err := validateUpload(&Upload{ContentType: ct, Data: []byte("x")})
		assert.NoError(t, err, ct)
	}
}

func TestProcess_OCRFailureIsUpstream(t *testing.T) {
	p := NewPipeline(&fakeOCR{err: errors.New("vision API down")}, llmtest.NewFake(scenarioJSON))

	_, err := p.ProcessProfile(context.Background(), pngUpload())
	var ue *UpstreamServiceError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "ocr", ue.Service)
}

func TestProcess_ModelFailureIsUpstream(t *testing.T) {
	model := &llmtest.Fake{Errors: []error{errors.New("500 from model")}}
	p := NewPipeline(&fakeOCR{text: scenarioText}, model)

	_, err := p.ProcessApplication(context.Background(), pngUpload())
	var ue *UpstreamServiceError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "extraction", ue.Service)
}

func TestProcess_NonJSONOutputIsFormatError(t *testing.T) {
	p := NewPipeline(&fakeOCR{text: scenarioText}, llmtest.NewFake("Sorry, I can't help with that."))

	_, err := p.ProcessProfile(context.Background(), pngUpload())
	var fe *ExtractionFormatError
	require.ErrorAs(t, err, &fe)
	var pe *parsing.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestProcessProfile_TruncatesPreview(t *testing.T) {
	long := strings.Repeat("x", 800)
	p := NewPipeline(&fakeOCR{text: long}, llmtest.NewFake(`{}`))

	res, err := p.ProcessProfile(context.Background(), pngUpload())
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", PreviewLength)+"...", res.ExtractedText)
}

func TestProcessApplication(t *testing.T) {
	model := llmtest.NewFake("```json\n{\"name\": \"John Doe\", \"email\": \"john@acme.io\", \"coverLetter\": \"Dear Hiring Manager\"}\n```")
	long := scenarioText + strings.Repeat(" more", 200)
	p := NewPipeline(&fakeOCR{text: long}, model)

	res, err := p.ProcessApplication(context.Background(), pngUpload())
	require.NoError(t, err)
	assert.Equal(t, "John Doe", res.Data.Name)
	assert.Equal(t, "Dear Hiring Manager", res.Data.CoverLetter)
	assert.Equal(t, long, res.ExtractedText, "application flow returns the full text")
	assert.Contains(t, model.Calls()[0].Prompt, "coverLetter")
}

func TestProcess_Archive(t *testing.T) {
	archive := &fakeArchive{}
	p := NewPipeline(&fakeOCR{text: scenarioText}, llmtest.NewFake(scenarioJSON), WithArchive(archive))

	_, err := p.ProcessProfile(context.Background(), pngUpload())
	require.NoError(t, err)
	assert.Equal(t, []string{"resumes/cv.png"}, archive.keys)

	// rejected uploads are not archived
	p = NewPipeline(&fakeOCR{text: "short"}, llmtest.NewFake(scenarioJSON), WithArchive(archive))
	_, err = p.ProcessProfile(context.Background(), pngUpload())
	require.Error(t, err)
	assert.Len(t, archive.keys, 1)

	// archive failures do not fail the request
	p = NewPipeline(&fakeOCR{text: scenarioText}, llmtest.NewFake(scenarioJSON), WithArchive(&fakeArchive{err: errors.New("bucket gone")}))
	_, err = p.ProcessProfile(context.Background(), pngUpload())
	assert.NoError(t, err)
}

func TestProcess_CallTimeout(t *testing.T) {
	p := NewPipeline(&fakeOCR{block: true}, llmtest.NewFake(scenarioJSON), WithCallTimeout(10*time.Millisecond))

	_, err := p.ProcessProfile(context.Background(), pngUpload())
	var ue *UpstreamServiceError
	require.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProcess_RetriesTransientModelErrors(t *testing.T) {
	model := &llmtest.Fake{
		Responses: []string{"", scenarioJSON},
		Errors:    []error{status.Error(codes.Unavailable, "overloaded"), nil},
	}
	rc := llm.RetryConfig{MaxRetries: 2, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1}
	p := NewPipeline(&fakeOCR{text: scenarioText}, model, WithRetry(rc))

	res, err := p.ProcessProfile(context.Background(), pngUpload())
	require.NoError(t, err)
	assert.Len(t, res.Data.Skills, 2)
	assert.Len(t, model.Calls(), 2)
}

func TestProcess_Progress(t *testing.T) {
	var stages []string
	p := NewPipeline(&fakeOCR{text: scenarioText}, llmtest.NewFake(scenarioJSON), WithProgress(func(e ProgressEvent) {
		stages = append(stages, e.Stage)
	}))

	_, err := p.ProcessProfile(context.Background(), pngUpload())
	require.NoError(t, err)
	assert.Equal(t, []string{"ocr", "extract", "sanitize"}, stages)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab...", Truncate("abc", 2))
	assert.Equal(t, "żó...", Truncate("żółw", 2))
}
