package model

import "time"

// User represents an account in the system.
type User struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreationTime time.Time `json:"creationTime"`
}

// Condition is a diagnosed medical condition on a user's record.
type Condition struct {
	Name          string     `json:"condition"`
	DiagnosedDate *time.Time `json:"diagnosedDate,omitempty"`
	Severity      string     `json:"severity,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// Allergy records an allergen with observed reaction and severity.
type Allergy struct {
	Allergen string `json:"allergen"`
	Severity string `json:"severity,omitempty"`
	Reaction string `json:"reaction,omitempty"`
}

// Medication is a prescribed or over-the-counter medication.
type Medication struct {
	Name         string     `json:"name"`
	Dosage       string     `json:"dosage,omitempty"`
	Frequency    string     `json:"frequency,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	PrescribedBy string     `json:"prescribedBy,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// Vital is a single vital-signs reading. All measurements are optional;
// absent values serialize as absent rather than zero.
type Vital struct {
	Date             time.Time `json:"date"`
	Systolic         *int      `json:"systolic,omitempty"`
	Diastolic        *int      `json:"diastolic,omitempty"`
	HeartRate        *int      `json:"heartRate,omitempty"`
	Temperature      *float64  `json:"temperature,omitempty"`
	Weight           *float64  `json:"weight,omitempty"`
	BloodSugar       *float64  `json:"bloodSugar,omitempty"`
	OxygenSaturation *int      `json:"oxygenSaturation,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}

// Appointment is a scheduled or past medical appointment.
type Appointment struct {
	Date      time.Time `json:"date"`
	Time      string    `json:"time,omitempty"`
	Doctor    string    `json:"doctor,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// HealthRecord is the full structured health record for one user.
// Each collection preserves insertion order (oldest first).
type HealthRecord struct {
	UserID       string        `json:"userId"`
	Conditions   []Condition   `json:"conditions"`
	Medications  []Medication  `json:"medications"`
	Allergies    []Allergy     `json:"allergies"`
	Vitals       []Vital       `json:"vitals"`
	Appointments []Appointment `json:"appointments"`
}

// SummaryRecord is one AI-generated summary appended to a user's history.
// Records are append-only; this service never mutates or deletes them.
type SummaryRecord struct {
	SummaryID       string    `json:"summaryId"`
	UserID          string    `json:"userId"`
	Date            time.Time `json:"date"`
	Summary         string    `json:"summary"`
	Insights        []string  `json:"insights"`
	Recommendations []string  `json:"recommendations"`
}
