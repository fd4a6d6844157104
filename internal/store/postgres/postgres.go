package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/healthvault/healthvault/internal/model"
	"github.com/healthvault/healthvault/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Bootstrap ensures connectivity and applies the schema.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, ddl)
	return err
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users         { return &users{db: s.db} }
func (s *pgStore) Records() store.Records     { return &records{db: s.db} }
func (s *pgStore) Summaries() store.Summaries { return &summaries{db: s.db} }

// HealthPing implements store.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func userExists(ctx context.Context, db *sql.DB, userID string) error {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id=$1`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	userID := m.UserID
	if userID == "" {
		userID = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := u.db.ExecContext(ctx, `
        INSERT INTO users (user_id, email, first_name, last_name, creation_time)
        VALUES ($1,$2,$3,$4,$5)
    `, userID, m.Email, m.FirstName, m.LastName, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.UserID = userID
	out.CreationTime = now
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, first_name, last_name, creation_time
        FROM users WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.UserID, &out.Email, &out.FirstName, &out.LastName, &out.CreationTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// --- Records ---

type records struct{ db *sql.DB }

func (r *records) Get(ctx context.Context, userID string) (*model.HealthRecord, error) {
	if err := userExists(ctx, r.db, userID); err != nil {
		return nil, err
	}
	rec := &model.HealthRecord{
		UserID:       userID,
		Conditions:   []model.Condition{},
		Medications:  []model.Medication{},
		Allergies:    []model.Allergy{},
		Vitals:       []model.Vital{},
		Appointments: []model.Appointment{},
	}

	if err := r.loadConditions(ctx, rec); err != nil {
		return nil, err
	}
	if err := r.loadMedications(ctx, rec); err != nil {
		return nil, err
	}
	if err := r.loadAllergies(ctx, rec); err != nil {
		return nil, err
	}
	if err := r.loadVitals(ctx, rec); err != nil {
		return nil, err
	}
	if err := r.loadAppointments(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *records) loadConditions(ctx context.Context, rec *model.HealthRecord) error {
	rows, err := r.db.QueryContext(ctx, `SELECT name, diagnosed_date, severity, notes FROM conditions WHERE user_id=$1 ORDER BY id`, rec.UserID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c model.Condition
		var sev, notes sql.NullString
		if err := rows.Scan(&c.Name, &c.DiagnosedDate, &sev, &notes); err != nil {
			return err
		}
		c.Severity, c.Notes = sev.String, notes.String
		rec.Conditions = append(rec.Conditions, c)
	}
	return rows.Err()
}

func (r *records) loadMedications(ctx context.Context, rec *model.HealthRecord) error {
	rows, err := r.db.QueryContext(ctx, `SELECT name, dosage, frequency, start_date, end_date, prescribed_by, notes FROM medications WHERE user_id=$1 ORDER BY id`, rec.UserID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var m model.Medication
		var dosage, freq, presc, notes sql.NullString
		if err := rows.Scan(&m.Name, &dosage, &freq, &m.StartDate, &m.EndDate, &presc, &notes); err != nil {
			return err
		}
		m.Dosage, m.Frequency, m.PrescribedBy, m.Notes = dosage.String, freq.String, presc.String, notes.String
		rec.Medications = append(rec.Medications, m)
	}
	return rows.Err()
}

func (r *records) loadAllergies(ctx context.Context, rec *model.HealthRecord) error {
	rows, err := r.db.QueryContext(ctx, `SELECT allergen, severity, reaction FROM allergies WHERE user_id=$1 ORDER BY id`, rec.UserID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a model.Allergy
		var sev, reaction sql.NullString
		if err := rows.Scan(&a.Allergen, &sev, &reaction); err != nil {
			return err
		}
		a.Severity, a.Reaction = sev.String, reaction.String
		rec.Allergies = append(rec.Allergies, a)
	}
	return rows.Err()
}

func (r *records) loadVitals(ctx context.Context, rec *model.HealthRecord) error {
	rows, err := r.db.QueryContext(ctx, `SELECT date, systolic, diastolic, heart_rate, temperature, weight, blood_sugar, oxygen_saturation, notes FROM vitals WHERE user_id=$1 ORDER BY id`, rec.UserID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var v model.Vital
		var notes sql.NullString
		if err := rows.Scan(&v.Date, &v.Systolic, &v.Diastolic, &v.HeartRate, &v.Temperature, &v.Weight, &v.BloodSugar, &v.OxygenSaturation, &notes); err != nil {
			return err
		}
		v.Notes = notes.String
		rec.Vitals = append(rec.Vitals, v)
	}
	return rows.Err()
}

func (r *records) loadAppointments(ctx context.Context, rec *model.HealthRecord) error {
	rows, err := r.db.QueryContext(ctx, `SELECT date, time, doctor, specialty, reason, status, notes FROM appointments WHERE user_id=$1 ORDER BY id`, rec.UserID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a model.Appointment
		var t, doctor, spec, reason, status, notes sql.NullString
		if err := rows.Scan(&a.Date, &t, &doctor, &spec, &reason, &status, &notes); err != nil {
			return err
		}
		a.Time, a.Doctor, a.Specialty = t.String, doctor.String, spec.String
		a.Reason, a.Status, a.Notes = reason.String, status.String, notes.String
		rec.Appointments = append(rec.Appointments, a)
	}
	return rows.Err()
}

func (r *records) AddCondition(ctx context.Context, userID string, c model.Condition) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO conditions (user_id, name, diagnosed_date, severity, notes) VALUES ($1,$2,$3,$4,$5)`,
		userID, c.Name, c.DiagnosedDate, c.Severity, c.Notes)
	return err
}

func (r *records) AddMedication(ctx context.Context, userID string, m model.Medication) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO medications (user_id, name, dosage, frequency, start_date, end_date, prescribed_by, notes) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		userID, m.Name, m.Dosage, m.Frequency, m.StartDate, m.EndDate, m.PrescribedBy, m.Notes)
	return err
}

func (r *records) AddAllergy(ctx context.Context, userID string, a model.Allergy) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO allergies (user_id, allergen, severity, reaction) VALUES ($1,$2,$3,$4)`,
		userID, a.Allergen, a.Severity, a.Reaction)
	return err
}

func (r *records) AddVital(ctx context.Context, userID string, v model.Vital) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	date := v.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO vitals (user_id, date, systolic, diastolic, heart_rate, temperature, weight, blood_sugar, oxygen_saturation, notes) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		userID, date, v.Systolic, v.Diastolic, v.HeartRate, v.Temperature, v.Weight, v.BloodSugar, v.OxygenSaturation, v.Notes)
	return err
}

func (r *records) AddAppointment(ctx context.Context, userID string, a model.Appointment) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO appointments (user_id, date, time, doctor, specialty, reason, status, notes) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		userID, a.Date, a.Time, a.Doctor, a.Specialty, a.Reason, a.Status, a.Notes)
	return err
}

// --- Summaries ---

type summaries struct{ db *sql.DB }

func (s *summaries) Append(ctx context.Context, rec *model.SummaryRecord) (*model.SummaryRecord, error) {
	if err := userExists(ctx, s.db, rec.UserID); err != nil {
		return nil, err
	}
	out := *rec
	out.SummaryID = uuid.New().String()
	out.Date = time.Now().UTC()
	if out.Insights == nil {
		out.Insights = []string{}
	}
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}

	insights, err := json.Marshal(out.Insights)
	if err != nil {
		return nil, err
	}
	recs, err := json.Marshal(out.Recommendations)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO ai_summaries (summary_id, user_id, date, summary, insights, recommendations)
        VALUES ($1,$2,$3,$4,$5,$6)
    `, out.SummaryID, out.UserID, out.Date, out.Summary, string(insights), string(recs))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *summaries) List(ctx context.Context, userID string) ([]*model.SummaryRecord, error) {
	if err := userExists(ctx, s.db, userID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT summary_id, date, summary, insights, recommendations
        FROM ai_summaries WHERE user_id=$1 ORDER BY id
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.SummaryRecord{}
	for rows.Next() {
		rec := &model.SummaryRecord{UserID: userID}
		var insights, recs []byte
		if err := rows.Scan(&rec.SummaryID, &rec.Date, &rec.Summary, &insights, &recs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(insights, &rec.Insights); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(recs, &rec.Recommendations); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
