package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		outcome Outcome
	}{
		{"401 is auth", 401, "", OutcomeAuthFailure},
		{"403 is auth", 403, "", OutcomeAuthFailure},
		{"429 is quota", 429, "", OutcomeQuotaExceeded},
		{"insufficient_quota body is quota regardless of status", 400, `{"error":{"code":"insufficient_quota"}}`, OutcomeQuotaExceeded},
		{"500 is transient", 500, "internal", OutcomeTransientFailure},
		{"503 is transient", 503, "unavailable", OutcomeTransientFailure},
		{"400 without quota hint is transient", 400, "bad request", OutcomeTransientFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := classifyStatus(tc.status, tc.body)
			assert.Equal(t, tc.outcome, res.Outcome)
			assert.Contains(t, res.Detail, "provider status")
		})
	}
}

func TestClassifyStatus_TruncatesLongBodies(t *testing.T) {
	res := classifyStatus(500, strings.Repeat("x", 10000))
	assert.Less(t, len(res.Detail), 3000)
}
