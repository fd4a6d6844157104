package ai

import (
	"context"
	"errors"
	"time"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client. It only
// focuses on the API call itself; the per-user quota and outcome handling
// live with the caller.
type GeminiClient struct {
	cli         *genai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewGeminiClient creates a Gemini-backed completer. If apiKey is empty the
// genai client falls back to its own environment lookup.
func NewGeminiClient(ctx context.Context, apiKey, model string, maxTokens int, temperature float32, timeout time.Duration) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model, maxTokens: maxTokens, temperature: temperature, timeout: timeout}, nil
}

// Complete performs one GenerateContent call and classifies the result.
func (g *GeminiClient) Complete(ctx context.Context, system, user string) CompletionResult {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temp := g.temperature
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: user}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
			Temperature:       &temp,
			MaxOutputTokens:   int32(g.maxTokens),
		},
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return classifyStatus(apiErr.Code, apiErr.Message)
		}
		return transient("generate content: " + err.Error())
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return transient("generate content: empty candidates")
	}
	return success(resp.Candidates[0].Content.Parts[0].Text)
}
