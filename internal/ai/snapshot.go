package ai

import "github.com/healthvault/healthvault/internal/model"

const (
	maxRecentVitals       = 5
	maxRecentAppointments = 3
)

// Snapshot is the bounded, read-only projection of a user's health record
// used as model input. It is built per request and never persisted.
type Snapshot struct {
	Conditions         []model.Condition   `json:"conditions"`
	Medications        []model.Medication  `json:"medications"`
	Allergies          []model.Allergy     `json:"allergies"`
	RecentVitals       []model.Vital       `json:"recentVitals"`
	RecentAppointments []model.Appointment `json:"appointments"`
}

// BuildSnapshot projects a full health record into a Snapshot. Conditions,
// medications and allergies are carried whole; vitals and appointments are
// capped to the most recent entries to bound prompt size. Insertion order is
// preserved and short or empty collections are taken as-is.
func BuildSnapshot(rec *model.HealthRecord) Snapshot {
	return Snapshot{
		Conditions:         copySlice(rec.Conditions),
		Medications:        copySlice(rec.Medications),
		Allergies:          copySlice(rec.Allergies),
		RecentVitals:       lastN(rec.Vitals, maxRecentVitals),
		RecentAppointments: lastN(rec.Appointments, maxRecentAppointments),
	}
}

// lastN returns a copy of the trailing n elements. Never out of range.
func lastN[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return copySlice(s)
}

// copySlice returns a non-nil copy so the snapshot serializes [] not null.
func copySlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
