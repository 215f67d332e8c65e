package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is used when GEMINI_MODEL is not set.
	DefaultModel = "gemini-2.0-flash"

	completionTimeout = 120 * time.Second
	temperature       = 0.2
)

// Gemini implements Client against the Gemini generation API. One request
// per call, no automatic retries: retrying a paid call is the caller's
// decision.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed oracle client. A missing API key is a
// configuration failure reported here, not at request time.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY not set")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// Complete sends the prompt and returns the raw response text, unparsed.
// The call is bounded by completionTimeout; a timeout surfaces as an
// error like any other transport failure.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("engine returned no candidates")
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}

	if b.Len() == 0 {
		return "", errors.New("engine returned empty content")
	}

	return b.String(), nil
}

// Close releases the underlying API client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
