package store

import (
	"context"

	"github.com/healthvault/healthvault/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Users() Users
	Records() Records
	Summaries() Summaries
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
}

// Records reads and appends to a user's structured health record.
// All methods return model.ErrNotFound when the user does not exist.
type Records interface {
	Get(ctx context.Context, userID string) (*model.HealthRecord, error)
	AddCondition(ctx context.Context, userID string, c model.Condition) error
	AddMedication(ctx context.Context, userID string, m model.Medication) error
	AddAllergy(ctx context.Context, userID string, a model.Allergy) error
	AddVital(ctx context.Context, userID string, v model.Vital) error
	AddAppointment(ctx context.Context, userID string, a model.Appointment) error
}

// Summaries is the append-only AI summary history for a user.
// Append stamps the record's SummaryID and Date; List returns history
// oldest first. Both return model.ErrNotFound for unknown users.
type Summaries interface {
	Append(ctx context.Context, rec *model.SummaryRecord) (*model.SummaryRecord, error)
	List(ctx context.Context, userID string) ([]*model.SummaryRecord, error)
}

// HealthPinger is implemented by stores that can report connectivity.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
