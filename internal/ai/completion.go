package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Outcome tags the result of one completion call. Exactly one outcome is
// produced per call; downstream code switches on it and never inspects
// provider-specific error shapes.
type Outcome int

const (
	// OutcomeSuccess carries the primary choice's text verbatim.
	OutcomeSuccess Outcome = iota
	// OutcomeQuotaExceeded means the provider's own quota or credits ran
	// out. Distinct from our per-user limiter firing.
	OutcomeQuotaExceeded
	// OutcomeAuthFailure is a credential problem with the provider; a
	// configuration fault, not a user error.
	OutcomeAuthFailure
	// OutcomeTransientFailure covers network hiccups, timeouts and any
	// other provider failure. Safe to retry on a later request.
	OutcomeTransientFailure
)

// CompletionResult is the tagged outcome of a single completion call.
// Detail is operator-facing only and must never reach API responses.
type CompletionResult struct {
	Outcome Outcome
	Text    string
	Detail  string
}

// Completer sends one composed prompt to the external completion service.
// Implementations make exactly one outbound call, honor a bounded timeout,
// and do not retry; retry policy belongs to the caller.
type Completer interface {
	Complete(ctx context.Context, system, user string) CompletionResult
}

func success(text string) CompletionResult {
	return CompletionResult{Outcome: OutcomeSuccess, Text: text}
}

func transient(detail string) CompletionResult {
	return CompletionResult{Outcome: OutcomeTransientFailure, Detail: detail}
}

// classifyStatus maps a provider HTTP status to an outcome. 429 covers both
// rate limiting and the OpenAI-style insufficient_quota body; both mean the
// provider's limiter fired, so both map to QuotaExceeded.
func classifyStatus(status int, body string) CompletionResult {
	detail := fmt.Sprintf("provider status %d: %s", status, truncate(body, 2048))
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return CompletionResult{Outcome: OutcomeAuthFailure, Detail: detail}
	case http.StatusTooManyRequests:
		return CompletionResult{Outcome: OutcomeQuotaExceeded, Detail: detail}
	}
	if strings.Contains(body, "insufficient_quota") {
		return CompletionResult{Outcome: OutcomeQuotaExceeded, Detail: detail}
	}
	return CompletionResult{Outcome: OutcomeTransientFailure, Detail: detail}
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
