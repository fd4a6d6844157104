package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/healthvault/healthvault/internal/model"
	"github.com/healthvault/healthvault/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := "u-" + uuid.New().String()
	email := userID + "@example.test"

	// Users
	u := &model.User{UserID: userID, Email: email, FirstName: "Ada", LastName: "Lovelace"}
	if _, err := s.Users().Create(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if got, err := s.Users().Get(ctx, userID); err != nil || got == nil || got.UserID != userID {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if _, err := s.Users().Get(ctx, "missing-"+userID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUser missing: want ErrNotFound, got %v", err)
	}

	// Record appends preserve insertion order
	if err := s.Records().AddCondition(ctx, userID, model.Condition{Name: "Hypertension", Severity: "moderate"}); err != nil {
		t.Fatalf("AddCondition: %v", err)
	}
	if err := s.Records().AddMedication(ctx, userID, model.Medication{Name: "Lisinopril", Dosage: "10mg"}); err != nil {
		t.Fatalf("AddMedication: %v", err)
	}
	if err := s.Records().AddAllergy(ctx, userID, model.Allergy{Allergen: "Penicillin", Severity: "severe"}); err != nil {
		t.Fatalf("AddAllergy: %v", err)
	}
	hr := 72
	for i := 0; i < 7; i++ {
		if err := s.Records().AddVital(ctx, userID, model.Vital{HeartRate: &hr}); err != nil {
			t.Fatalf("AddVital: %v", err)
		}
	}
	if err := s.Records().AddAppointment(ctx, userID, model.Appointment{Doctor: "Dr. Chen", Status: "scheduled"}); err != nil {
		t.Fatalf("AddAppointment: %v", err)
	}

	rec, err := s.Records().Get(ctx, userID)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if len(rec.Conditions) != 1 || rec.Conditions[0].Name != "Hypertension" {
		t.Fatalf("GetRecord conditions: %+v", rec.Conditions)
	}
	if len(rec.Vitals) != 7 {
		t.Fatalf("GetRecord vitals: n=%d", len(rec.Vitals))
	}
	if rec.Vitals[0].HeartRate == nil || *rec.Vitals[0].HeartRate != 72 {
		t.Fatalf("GetRecord vital heart rate: %+v", rec.Vitals[0])
	}
	if _, err := s.Records().Get(ctx, "missing-"+userID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetRecord missing: want ErrNotFound, got %v", err)
	}

	// Summaries are append-only, listed oldest first
	r1, err := s.Summaries().Append(ctx, &model.SummaryRecord{UserID: userID, Summary: "first", Insights: []string{"- a"}, Recommendations: []string{"- b"}})
	if err != nil {
		t.Fatalf("AppendSummary r1: %v", err)
	}
	if r1.SummaryID == "" || r1.Date.IsZero() {
		t.Fatalf("AppendSummary r1 not stamped: %+v", r1)
	}
	r2, err := s.Summaries().Append(ctx, &model.SummaryRecord{UserID: userID, Summary: "second"})
	if err != nil {
		t.Fatalf("AppendSummary r2: %v", err)
	}
	if r2.Date.Before(r1.Date) {
		t.Fatalf("AppendSummary timestamps decreasing: %v then %v", r1.Date, r2.Date)
	}

	lst, err := s.Summaries().List(ctx, userID)
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListSummaries: n=%d err=%v", len(lst), err)
	}
	if lst[0].Summary != "first" || lst[1].Summary != "second" {
		t.Fatalf("ListSummaries order: %q then %q", lst[0].Summary, lst[1].Summary)
	}
	if lst[1].Insights == nil || len(lst[1].Insights) != 0 {
		t.Fatalf("ListSummaries: empty insights should round-trip as empty slice, got %v", lst[1].Insights)
	}

	if _, err := s.Summaries().Append(ctx, &model.SummaryRecord{UserID: "missing-" + userID, Summary: "x"}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("AppendSummary missing user: want ErrNotFound, got %v", err)
	}
	if _, err := s.Summaries().List(ctx, "missing-"+userID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("ListSummaries missing user: want ErrNotFound, got %v", err)
	}
}
