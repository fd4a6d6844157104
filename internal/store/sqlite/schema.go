package sqlite

// schema is applied on every Open; statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id       TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    first_name    TEXT NOT NULL,
    last_name     TEXT NOT NULL,
    creation_time TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS conditions (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id        TEXT NOT NULL REFERENCES users(user_id),
    name           TEXT NOT NULL,
    diagnosed_date TIMESTAMP,
    severity       TEXT,
    notes          TEXT
);

CREATE TABLE IF NOT EXISTS medications (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id       TEXT NOT NULL REFERENCES users(user_id),
    name          TEXT NOT NULL,
    dosage        TEXT,
    frequency     TEXT,
    start_date    TIMESTAMP,
    end_date      TIMESTAMP,
    prescribed_by TEXT,
    notes         TEXT
);

CREATE TABLE IF NOT EXISTS allergies (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id  TEXT NOT NULL REFERENCES users(user_id),
    allergen TEXT NOT NULL,
    severity TEXT,
    reaction TEXT
);

CREATE TABLE IF NOT EXISTS vitals (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id           TEXT NOT NULL REFERENCES users(user_id),
    date              TIMESTAMP NOT NULL,
    systolic          INTEGER,
    diastolic         INTEGER,
    heart_rate        INTEGER,
    temperature       REAL,
    weight            REAL,
    blood_sugar       REAL,
    oxygen_saturation INTEGER,
    notes             TEXT
);

CREATE TABLE IF NOT EXISTS appointments (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id   TEXT NOT NULL REFERENCES users(user_id),
    date      TIMESTAMP NOT NULL,
    time      TEXT,
    doctor    TEXT,
    specialty TEXT,
    reason    TEXT,
    status    TEXT,
    notes     TEXT
);

CREATE TABLE IF NOT EXISTS ai_summaries (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    summary_id      TEXT NOT NULL UNIQUE,
    user_id         TEXT NOT NULL REFERENCES users(user_id),
    date            TIMESTAMP NOT NULL,
    summary         TEXT NOT NULL,
    insights        TEXT NOT NULL,
    recommendations TEXT NOT NULL
);
`
