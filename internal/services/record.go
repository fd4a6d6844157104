package services

import (
	"context"
	"fmt"

	"github.com/healthvault/healthvault/internal/model"
	"github.com/healthvault/healthvault/internal/store"
)

// RecordService handles reads and appends on a user's health record.
type RecordService struct {
	store store.Store
}

func NewRecordService(s store.Store) *RecordService { return &RecordService{store: s} }

func (s *RecordService) GetRecord(ctx context.Context, userID string) (*model.HealthRecord, error) {
	return s.store.Records().Get(ctx, userID)
}

func (s *RecordService) AddCondition(ctx context.Context, userID string, c model.Condition) error {
	if c.Name == "" {
		return fmt.Errorf("%w: condition required", model.ErrValidation)
	}
	return s.store.Records().AddCondition(ctx, userID, c)
}

func (s *RecordService) AddMedication(ctx context.Context, userID string, m model.Medication) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name required", model.ErrValidation)
	}
	return s.store.Records().AddMedication(ctx, userID, m)
}

func (s *RecordService) AddAllergy(ctx context.Context, userID string, a model.Allergy) error {
	if a.Allergen == "" {
		return fmt.Errorf("%w: allergen required", model.ErrValidation)
	}
	return s.store.Records().AddAllergy(ctx, userID, a)
}

func (s *RecordService) AddVital(ctx context.Context, userID string, v model.Vital) error {
	return s.store.Records().AddVital(ctx, userID, v)
}

func (s *RecordService) AddAppointment(ctx context.Context, userID string, a model.Appointment) error {
	if a.Date.IsZero() {
		return fmt.Errorf("%w: date required", model.ErrValidation)
	}
	return s.store.Records().AddAppointment(ctx, userID, a)
}
