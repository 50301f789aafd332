// Package llmtest provides a scriptable llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/jobboard/internal/llm"
)

// Call records one request made to the fake.
type Call struct {
	Method   string
	Prompt   string
	Image    []byte
	MIMEType string
	Tier     llm.ModelTier
}

// Fake is an llm.Client that returns canned responses. Responses are
// consumed in order; the last one repeats once the list is exhausted.
type Fake struct {
	mu        sync.Mutex
	Responses []string
	Errors    []error
	calls     []Call
}

var _ llm.Client = (*Fake)(nil)

// NewFake returns a Fake that always answers with response.
func NewFake(response string) *Fake {
	return &Fake{Responses: []string{response}}
}

func (f *Fake) next(c Call) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := len(f.calls)
	f.calls = append(f.calls, c)

	var err error
	if len(f.Errors) > 0 {
		err = f.Errors[min(i, len(f.Errors)-1)]
	}
	if err != nil {
		return "", err
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	return f.Responses[min(i, len(f.Responses)-1)], nil
}

// GenerateContent implements llm.Client.
func (f *Fake) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.next(Call{Method: "GenerateContent", Prompt: prompt, Tier: tier})
}

// GenerateJSON implements llm.Client.
func (f *Fake) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.next(Call{Method: "GenerateJSON", Prompt: prompt, Tier: tier})
}

// GenerateFromImage implements llm.Client.
func (f *Fake) GenerateFromImage(_ context.Context, prompt string, image []byte, mimeType string, tier llm.ModelTier) (string, error) {
	return f.next(Call{Method: "GenerateFromImage", Prompt: prompt, Image: image, MIMEType: mimeType, Tier: tier})
}

// GetModel implements llm.Client.
func (f *Fake) GetModel(tier llm.ModelTier) string {
	return llm.DefaultConfig().GetModel(tier)
}

// Close implements llm.Client.
func (f *Fake) Close() error { return nil }

// Calls returns a copy of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}
