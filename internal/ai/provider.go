package ai

import (
	"context"
	"fmt"

	"github.com/healthvault/healthvault/internal/config"
)

// NewCompleter constructs the completion provider selected by cfg.AIProvider.
func NewCompleter(ctx context.Context, cfg *config.Config) (Completer, error) {
	switch cfg.AIProvider {
	case "openai":
		return NewOpenAIClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AIMaxTokens, cfg.AITemperature, cfg.AIRequestTimeout), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.AIAPIKey, cfg.AIModel, cfg.AIMaxTokens, cfg.AITemperature, cfg.AIRequestTimeout)
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER: %s", cfg.AIProvider)
	}
}
