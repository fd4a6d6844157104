package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/healthvault/internal/model"
	"github.com/healthvault/healthvault/internal/store"
)

// New opens (or creates) a SQLite database and returns a store backed by it.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB allows wiring with an existing connection (used by factory and tests).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Users() store.Users         { return &users{db: s.db} }
func (s *sqliteStore) Records() store.Records     { return &records{db: s.db} }
func (s *sqliteStore) Summaries() store.Summaries { return &summaries{db: s.db} }

// HealthPing implements store.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// userExists maps a missing user row to model.ErrNotFound.
func userExists(ctx context.Context, db *sql.DB, userID string) error {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id = ?`, userID).Scan(&one)
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
	_, err := u.db.ExecContext(ctx, `INSERT INTO users (user_id, email, first_name, last_name, creation_time) VALUES (?,?,?,?,?)`,
		userID, m.Email, m.FirstName, m.LastName, now)
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
	row := u.db.QueryRowContext(ctx, `SELECT user_id, email, first_name, last_name, creation_time FROM users WHERE user_id = ?`, userID)
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

	rows, err := r.db.QueryContext(ctx, `SELECT name, diagnosed_date, severity, notes FROM conditions WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c model.Condition
		var sev, notes sql.NullString
		if err := rows.Scan(&c.Name, &c.DiagnosedDate, &sev, &notes); err != nil {
			_ = rows.Close()
			return nil, err
		}
		c.Severity, c.Notes = sev.String, notes.String
		rec.Conditions = append(rec.Conditions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	_ = rows.Close()

	rows, err = r.db.QueryContext(ctx, `SELECT name, dosage, frequency, start_date, end_date, prescribed_by, notes FROM medications WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var m model.Medication
		var dosage, freq, presc, notes sql.NullString
		if err := rows.Scan(&m.Name, &dosage, &freq, &m.StartDate, &m.EndDate, &presc, &notes); err != nil {
			_ = rows.Close()
			return nil, err
		}
		m.Dosage, m.Frequency, m.PrescribedBy, m.Notes = dosage.String, freq.String, presc.String, notes.String
		rec.Medications = append(rec.Medications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	_ = rows.Close()

	rows, err = r.db.QueryContext(ctx, `SELECT allergen, severity, reaction FROM allergies WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var a model.Allergy
		var sev, reaction sql.NullString
		if err := rows.Scan(&a.Allergen, &sev, &reaction); err != nil {
			_ = rows.Close()
			return nil, err
		}
		a.Severity, a.Reaction = sev.String, reaction.String
		rec.Allergies = append(rec.Allergies, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	_ = rows.Close()

	rows, err = r.db.QueryContext(ctx, `SELECT date, systolic, diastolic, heart_rate, temperature, weight, blood_sugar, oxygen_saturation, notes FROM vitals WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var v model.Vital
		var notes sql.NullString
		if err := rows.Scan(&v.Date, &v.Systolic, &v.Diastolic, &v.HeartRate, &v.Temperature, &v.Weight, &v.BloodSugar, &v.OxygenSaturation, &notes); err != nil {
			_ = rows.Close()
			return nil, err
		}
		v.Notes = notes.String
		rec.Vitals = append(rec.Vitals, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	_ = rows.Close()

	rows, err = r.db.QueryContext(ctx, `SELECT date, time, doctor, specialty, reason, status, notes FROM appointments WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a model.Appointment
		var t, doctor, spec, reason, status, notes sql.NullString
		if err := rows.Scan(&a.Date, &t, &doctor, &spec, &reason, &status, &notes); err != nil {
			return nil, err
		}
		a.Time, a.Doctor, a.Specialty = t.String, doctor.String, spec.String
		a.Reason, a.Status, a.Notes = reason.String, status.String, notes.String
		rec.Appointments = append(rec.Appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *records) AddCondition(ctx context.Context, userID string, c model.Condition) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO conditions (user_id, name, diagnosed_date, severity, notes) VALUES (?,?,?,?,?)`,
		userID, c.Name, c.DiagnosedDate, c.Severity, c.Notes)
	return err
}

func (r *records) AddMedication(ctx context.Context, userID string, m model.Medication) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO medications (user_id, name, dosage, frequency, start_date, end_date, prescribed_by, notes) VALUES (?,?,?,?,?,?,?,?)`,
		userID, m.Name, m.Dosage, m.Frequency, m.StartDate, m.EndDate, m.PrescribedBy, m.Notes)
	return err
}

func (r *records) AddAllergy(ctx context.Context, userID string, a model.Allergy) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO allergies (user_id, allergen, severity, reaction) VALUES (?,?,?,?)`,
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
	_, err := r.db.ExecContext(ctx, `INSERT INTO vitals (user_id, date, systolic, diastolic, heart_rate, temperature, weight, blood_sugar, oxygen_saturation, notes) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		userID, date, v.Systolic, v.Diastolic, v.HeartRate, v.Temperature, v.Weight, v.BloodSugar, v.OxygenSaturation, v.Notes)
	return err
}

func (r *records) AddAppointment(ctx context.Context, userID string, a model.Appointment) error {
	if err := userExists(ctx, r.db, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO appointments (user_id, date, time, doctor, specialty, reason, status, notes) VALUES (?,?,?,?,?,?,?,?)`,
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
	_, err = s.db.ExecContext(ctx, `INSERT INTO ai_summaries (summary_id, user_id, date, summary, insights, recommendations) VALUES (?,?,?,?,?,?)`,
		out.SummaryID, out.UserID, out.Date, out.Summary, string(insights), string(recs))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *summaries) List(ctx context.Context, userID string) ([]*model.SummaryRecord, error) {
	if err := userExists(ctx, s.db, userID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT summary_id, date, summary, insights, recommendations FROM ai_summaries WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.SummaryRecord{}
	for rows.Next() {
		rec := &model.SummaryRecord{UserID: userID}
		var insights, recs string
		if err := rows.Scan(&rec.SummaryID, &rec.Date, &rec.Summary, &insights, &recs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(insights), &rec.Insights); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(recs), &rec.Recommendations); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
