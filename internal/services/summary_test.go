package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthvault/healthvault/internal/ai"
	"github.com/healthvault/healthvault/internal/model"
	"github.com/healthvault/healthvault/internal/ratelimit"
	"github.com/healthvault/healthvault/internal/store"
)

// fakeStore satisfies store.Store for pipeline tests. Record reads and
// summary appends are configurable; everything else is inert.
type fakeStore struct {
	rec       *model.HealthRecord
	recErr    error
	appended  []*model.SummaryRecord
	appendErr error
}

func (s *fakeStore) Users() store.Users         { return nil }
func (s *fakeStore) Records() store.Records     { return (*fakeRecords)(s) }
func (s *fakeStore) Summaries() store.Summaries { return (*fakeSummaries)(s) }

type fakeRecords fakeStore

func (r *fakeRecords) Get(ctx context.Context, userID string) (*model.HealthRecord, error) {
	if r.recErr != nil {
		return nil, r.recErr
	}
	return r.rec, nil
}
func (r *fakeRecords) AddCondition(ctx context.Context, userID string, c model.Condition) error {
	return nil
}
func (r *fakeRecords) AddMedication(ctx context.Context, userID string, m model.Medication) error {
	return nil
}
func (r *fakeRecords) AddAllergy(ctx context.Context, userID string, a model.Allergy) error {
	return nil
}
func (r *fakeRecords) AddVital(ctx context.Context, userID string, v model.Vital) error { return nil }
func (r *fakeRecords) AddAppointment(ctx context.Context, userID string, a model.Appointment) error {
	return nil
}

type fakeSummaries fakeStore

func (s *fakeSummaries) Append(ctx context.Context, rec *model.SummaryRecord) (*model.SummaryRecord, error) {
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	rec.SummaryID = "sum-1"
	rec.Date = time.Now()
	s.appended = append(s.appended, rec)
	return rec, nil
}

func (s *fakeSummaries) List(ctx context.Context, userID string) ([]*model.SummaryRecord, error) {
	return s.appended, nil
}

// fakeCompleter returns a fixed result and counts calls.
type fakeCompleter struct {
	res   ai.CompletionResult
	calls int
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) ai.CompletionResult {
	f.calls++
	return f.res
}

func newTestService(st *fakeStore, c ai.Completer, quota int) *SummaryService {
	return NewSummaryService(st, c, ratelimit.New(quota, time.Hour), zerolog.Nop())
}

func healthyRecord() *model.HealthRecord {
	return &model.HealthRecord{
		UserID:     "u1",
		Conditions: []model.Condition{{Name: "Hypertension"}},
		Vitals:     []model.Vital{{Date: time.Now()}},
	}
}

func TestGenerate_SuccessAppendsParsedSummary(t *testing.T) {
	raw := "Summary: Patient stable.\nInsights:\n- Stable vitals\nRecommendations:\n- Continue current plan"
	st := &fakeStore{rec: healthyRecord()}
	c := &fakeCompleter{res: ai.CompletionResult{Outcome: ai.OutcomeSuccess, Text: raw}}
	svc := newTestService(st, c, 10)

	got, err := svc.Generate(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "Patient stable.", got.Summary)
	assert.Equal(t, []string{"- Stable vitals"}, got.Insights)
	assert.Equal(t, []string{"- Continue current plan"}, got.Recommendations)
	assert.Equal(t, raw, got.FullResponse)

	require.Len(t, st.appended, 1)
	assert.Equal(t, "u1", st.appended[0].UserID)
	assert.Equal(t, "Patient stable.", st.appended[0].Summary)
}

func TestGenerate_RateLimitedBeforeAnyWork(t *testing.T) {
	st := &fakeStore{rec: healthyRecord()}
	c := &fakeCompleter{res: ai.CompletionResult{Outcome: ai.OutcomeSuccess, Text: "ok"}}
	svc := newTestService(st, c, 1)

	_, err := svc.Generate(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "u1")
	assert.ErrorIs(t, err, model.ErrRateLimited)
	assert.Equal(t, 1, c.calls)
	assert.Len(t, st.appended, 1)
}

func TestGenerate_UnknownUser(t *testing.T) {
	st := &fakeStore{recErr: model.ErrNotFound}
	c := &fakeCompleter{res: ai.CompletionResult{Outcome: ai.OutcomeSuccess, Text: "ok"}}
	svc := newTestService(st, c, 10)

	_, err := svc.Generate(context.Background(), "missing")

	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Zero(t, c.calls)
}

func TestGenerate_ProviderFailuresLeaveHistoryUntouched(t *testing.T) {
	cases := []struct {
		name    string
		outcome ai.Outcome
		wantErr error
	}{
		{"quota", ai.OutcomeQuotaExceeded, ErrProviderQuota},
		{"auth", ai.OutcomeAuthFailure, ErrProviderAuth},
		{"transient", ai.OutcomeTransientFailure, ErrProviderDown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := &fakeStore{rec: healthyRecord()}
			c := &fakeCompleter{res: ai.CompletionResult{Outcome: tc.outcome, Detail: "provider said no"}}
			svc := newTestService(st, c, 10)

			_, err := svc.Generate(context.Background(), "u1")

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, st.appended)
		})
	}
}

func TestGenerate_ConsecutiveRunsAppendInOrder(t *testing.T) {
	st := &fakeStore{rec: healthyRecord()}
	c := &fakeCompleter{res: ai.CompletionResult{Outcome: ai.OutcomeSuccess, Text: "Summary: First."}}
	svc := newTestService(st, c, 10)

	_, err := svc.Generate(context.Background(), "u1")
	require.NoError(t, err)
	c.res.Text = "Summary: Second."
	_, err = svc.Generate(context.Background(), "u1")
	require.NoError(t, err)

	history, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "First.", history[0].Summary)
	assert.Equal(t, "Second.", history[1].Summary)
}

func TestGenerate_AppendFailureSurfaces(t *testing.T) {
	st := &fakeStore{rec: healthyRecord(), appendErr: assert.AnError}
	c := &fakeCompleter{res: ai.CompletionResult{Outcome: ai.OutcomeSuccess, Text: "Summary: ok"}}
	svc := newTestService(st, c, 10)

	_, err := svc.Generate(context.Background(), "u1")

	assert.ErrorIs(t, err, assert.AnError)
}
