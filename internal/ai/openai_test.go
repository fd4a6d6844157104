package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *OpenAIClient {
	return NewOpenAIClient(baseURL, "test-key", "gpt-4", 1000, 0.7, 5*time.Second)
}

func TestOpenAIClient_Success(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Summary: All good."}}]}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).Complete(context.Background(), "system text", "user text")

	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Summary: All good.", res.Text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4", gotReq.Model)
	assert.Equal(t, 1000, gotReq.MaxTokens)
	assert.InDelta(t, 0.7, gotReq.Temperature, 0.001)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "system text", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "user text", gotReq.Messages[1].Content)
}

func TestOpenAIClient_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		outcome Outcome
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, OutcomeAuthFailure},
		{"forbidden", http.StatusForbidden, `{"error":{"message":"no access"}}`, OutcomeAuthFailure},
		{"too many requests", http.StatusTooManyRequests, `{"error":{"type":"rate_limit"}}`, OutcomeQuotaExceeded},
		{"insufficient quota", http.StatusInternalServerError, `{"error":{"code":"insufficient_quota"}}`, OutcomeQuotaExceeded},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom"}}`, OutcomeTransientFailure},
		{"bad gateway", http.StatusBadGateway, "upstream failed", OutcomeTransientFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			res := newTestClient(srv.URL).Complete(context.Background(), "s", "u")

			assert.Equal(t, tc.outcome, res.Outcome)
			assert.Empty(t, res.Text)
			assert.NotEmpty(t, res.Detail)
		})
	}
}

func TestOpenAIClient_TimeoutIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "k", "gpt-4", 1000, 0.7, 20*time.Millisecond)
	res := c.Complete(context.Background(), "s", "u")

	assert.Equal(t, OutcomeTransientFailure, res.Outcome)
}

func TestOpenAIClient_EmptyChoicesIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL).Complete(context.Background(), "s", "u")

	assert.Equal(t, OutcomeTransientFailure, res.Outcome)
}
