package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/healthvault/healthvault/internal/ai"
	"github.com/healthvault/healthvault/internal/model"
	"github.com/healthvault/healthvault/internal/ratelimit"
	"github.com/healthvault/healthvault/internal/store"
)

// Provider failure sentinels. Handlers map these to fixed user-facing
// messages; the operator-facing detail only ever goes to the log.
var (
	ErrProviderQuota = errors.New("completion provider quota exceeded")
	ErrProviderAuth  = errors.New("completion provider authentication failed")
	ErrProviderDown  = errors.New("completion provider unavailable")
)

// GeneratedSummary is the caller-visible result of one successful run.
type GeneratedSummary struct {
	Summary         string   `json:"summary"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	FullResponse    string   `json:"fullResponse"`
}

// SummaryService runs the AI health summarization pipeline: rate-limit gate,
// snapshot projection, prompt composition, one completion call, section
// parsing, history append.
type SummaryService struct {
	store     store.Store
	completer ai.Completer
	limiter   *ratelimit.Limiter
	log       zerolog.Logger
}

func NewSummaryService(s store.Store, c ai.Completer, l *ratelimit.Limiter, log zerolog.Logger) *SummaryService {
	return &SummaryService{store: s, completer: c, limiter: l, log: log}
}

// Generate runs the pipeline for one user. Failures before the history
// append leave the user's summary history untouched.
func (s *SummaryService) Generate(ctx context.Context, userID string) (*GeneratedSummary, error) {
	// The gate runs before any other work so an exhausted user costs nothing.
	if !s.limiter.Allow(userID) {
		return nil, model.ErrRateLimited
	}

	rec, err := s.store.Records().Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := ai.BuildSnapshot(rec)
	prompt := ai.ComposePrompt(snap)

	res := s.completer.Complete(ctx, ai.SystemInstruction, prompt)
	switch res.Outcome {
	case ai.OutcomeSuccess:
	case ai.OutcomeQuotaExceeded:
		s.log.Warn().Str("user_id", userID).Str("detail", res.Detail).Msg("provider quota exceeded")
		return nil, ErrProviderQuota
	case ai.OutcomeAuthFailure:
		s.log.Error().Str("detail", res.Detail).Msg("provider auth failure, check AI_API_KEY")
		return nil, ErrProviderAuth
	default:
		s.log.Warn().Str("user_id", userID).Str("detail", res.Detail).Msg("provider call failed")
		return nil, ErrProviderDown
	}

	parsed := ai.ParseSections(res.Text)

	if _, err := s.store.Summaries().Append(ctx, &model.SummaryRecord{
		UserID:          userID,
		Summary:         parsed.Summary,
		Insights:        parsed.Insights,
		Recommendations: parsed.Recommendations,
	}); err != nil {
		return nil, err
	}

	return &GeneratedSummary{
		Summary:         parsed.Summary,
		Insights:        parsed.Insights,
		Recommendations: parsed.Recommendations,
		FullResponse:    res.Text,
	}, nil
}

// List returns the user's summary history, oldest first.
func (s *SummaryService) List(ctx context.Context, userID string) ([]*model.SummaryRecord, error) {
	return s.store.Summaries().List(ctx, userID)
}
