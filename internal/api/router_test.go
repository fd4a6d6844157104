package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthvault/healthvault/internal/ai"
	"github.com/healthvault/healthvault/internal/auth"
	"github.com/healthvault/healthvault/internal/ratelimit"
	"github.com/healthvault/healthvault/internal/services"
	"github.com/healthvault/healthvault/internal/store/sqlite"
)

// scriptedCompleter returns queued results in order, repeating the last one.
type scriptedCompleter struct {
	results []ai.CompletionResult
	calls   int
}

func (c *scriptedCompleter) Complete(ctx context.Context, system, user string) ai.CompletionResult {
	i := c.calls
	if i >= len(c.results) {
		i = len(c.results) - 1
	}
	c.calls++
	return c.results[i]
}

type testEnv struct {
	srv       *httptest.Server
	completer *scriptedCompleter
}

func newTestEnv(t *testing.T, quota int, results ...ai.CompletionResult) *testEnv {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)

	completer := &scriptedCompleter{results: results}
	if len(results) == 0 {
		completer.results = []ai.CompletionResult{{Outcome: ai.OutcomeSuccess, Text: "Summary: ok"}}
	}
	summarySvc := services.NewSummaryService(st, completer, ratelimit.New(quota, time.Hour), zerolog.Nop())
	authorizer := auth.NewStaticAuthorizer("tok-alice=alice,tok-ghost=ghost")

	srv := httptest.NewServer(NewRouter(st, summarySvc, authorizer))
	t.Cleanup(srv.Close)

	env := &testEnv{srv: srv, completer: completer}
	env.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"userId": "alice", "email": "alice@example.com", "firstName": "Alice",
	}, http.StatusCreated)
	return env
}

// do issues one request and decodes the JSON response into a map.
func (e *testEnv) do(t *testing.T, method, path, token string, payload interface{}, wantStatus int) map[string]interface{} {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode)

	out := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return out
}

func TestRouter_UserLifecycle(t *testing.T) {
	env := newTestEnv(t, 10)

	got := env.do(t, http.MethodGet, "/api/users/alice", "", nil, http.StatusOK)
	assert.Equal(t, "alice", got["userId"])
	assert.Equal(t, "alice@example.com", got["email"])

	env.do(t, http.MethodGet, "/api/users/nobody", "", nil, http.StatusNotFound)
	env.do(t, http.MethodPost, "/api/users", "", map[string]string{"firstName": "NoEmail"}, http.StatusBadRequest)
}

func TestRouter_RecordWritesAndProfile(t *testing.T) {
	env := newTestEnv(t, 10)

	env.do(t, http.MethodPost, "/api/health/conditions", "tok-alice",
		map[string]string{"condition": "Hypertension", "severity": "moderate"}, http.StatusCreated)
	env.do(t, http.MethodPost, "/api/health/vitals", "tok-alice",
		map[string]interface{}{"date": time.Now().UTC(), "heartRate": 72}, http.StatusCreated)
	env.do(t, http.MethodPost, "/api/health/conditions", "tok-alice",
		map[string]string{"severity": "missing name"}, http.StatusBadRequest)

	profile := env.do(t, http.MethodGet, "/api/health/profile", "tok-alice", nil, http.StatusOK)
	conditions, ok := profile["conditions"].([]interface{})
	require.True(t, ok)
	require.Len(t, conditions, 1)
	vitals, ok := profile["vitals"].([]interface{})
	require.True(t, ok)
	require.Len(t, vitals, 1)
}

func TestRouter_AuthRequired(t *testing.T) {
	env := newTestEnv(t, 10)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/api/health/profile", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_TokenForUnknownUserIs404(t *testing.T) {
	env := newTestEnv(t, 10)

	// tok-ghost authenticates but "ghost" was never created.
	env.do(t, http.MethodGet, "/api/health/profile", "tok-ghost", nil, http.StatusNotFound)
	env.do(t, http.MethodPost, "/api/ai/summary", "tok-ghost", nil, http.StatusNotFound)
}

func TestRouter_GenerateAndListSummaries(t *testing.T) {
	raw := "Summary: Patient stable.\nInsights:\n- Stable vitals\nRecommendations:\n- Continue current plan"
	env := newTestEnv(t, 10, ai.CompletionResult{Outcome: ai.OutcomeSuccess, Text: raw})

	got := env.do(t, http.MethodPost, "/api/ai/summary", "tok-alice", nil, http.StatusOK)
	assert.Equal(t, "Patient stable.", got["summary"])
	assert.Equal(t, []interface{}{"- Stable vitals"}, got["insights"])
	assert.Equal(t, []interface{}{"- Continue current plan"}, got["recommendations"])
	assert.Equal(t, raw, got["fullResponse"])

	resp, err := http.Get(env.srv.URL + "/api/ai/summaries")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/api/ai/summaries", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer tok-alice")
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var history []map[string]interface{}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&history))
	require.Len(t, history, 1)
	assert.Equal(t, "Patient stable.", history[0]["summary"])
	assert.NotEmpty(t, history[0]["summaryId"])
	assert.NotEmpty(t, history[0]["date"])
}

func TestRouter_ProviderQuotaIs429WithFixedMessage(t *testing.T) {
	env := newTestEnv(t, 10, ai.CompletionResult{Outcome: ai.OutcomeQuotaExceeded, Detail: "insufficient_quota"})

	got := env.do(t, http.MethodPost, "/api/ai/summary", "tok-alice", nil, http.StatusTooManyRequests)
	assert.Equal(t, msgQuotaExceeded, got["message"])
}

func TestRouter_ProviderFailureIs500WithFixedMessage(t *testing.T) {
	env := newTestEnv(t, 10, ai.CompletionResult{Outcome: ai.OutcomeTransientFailure, Detail: "boom"})

	got := env.do(t, http.MethodPost, "/api/ai/summary", "tok-alice", nil, http.StatusInternalServerError)
	assert.Equal(t, msgGenerateFail, got["message"])
}

func TestRouter_UserRateLimitIs429(t *testing.T) {
	env := newTestEnv(t, 1, ai.CompletionResult{Outcome: ai.OutcomeSuccess, Text: "Summary: ok"})

	env.do(t, http.MethodPost, "/api/ai/summary", "tok-alice", nil, http.StatusOK)
	got := env.do(t, http.MethodPost, "/api/ai/summary", "tok-alice", nil, http.StatusTooManyRequests)
	assert.Equal(t, msgRateLimited, got["message"])
	assert.Equal(t, 1, env.completer.calls)
}
