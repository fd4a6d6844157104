package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
// Model selection, output token cap and temperature are fixed per client
// and come from configuration.
type OpenAIClient struct {
	client      *resty.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIClient creates a client for the given base URL (e.g.
// https://api.openai.com/v1). The timeout bounds the whole request; on
// expiry the call resolves to a transient failure rather than hanging.
func NewOpenAIClient(baseURL, apiKey, model string, maxTokens int, temperature float32, timeout time.Duration) *OpenAIClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	return &OpenAIClient{client: c, model: model, maxTokens: maxTokens, temperature: temperature}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete performs exactly one chat-completions call and classifies the
// result. No retries here.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) CompletionResult {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/chat/completions")
	if err != nil {
		return transient("chat completions request: " + err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		return classifyStatus(resp.StatusCode(), resp.String())
	}

	var out chatResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return transient("decode chat response: " + err.Error())
	}
	if len(out.Choices) == 0 {
		return transient("chat response has no choices")
	}
	return success(out.Choices[0].Message.Content)
}
