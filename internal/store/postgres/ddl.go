package postgres

// ddl is applied by Bootstrap; statements are idempotent.
const ddl = `
CREATE TABLE IF NOT EXISTS users (
    user_id       TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    first_name    TEXT NOT NULL,
    last_name     TEXT NOT NULL,
    creation_time TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS conditions (
    id             BIGSERIAL PRIMARY KEY,
    user_id        TEXT NOT NULL REFERENCES users(user_id),
    name           TEXT NOT NULL,
    diagnosed_date TIMESTAMPTZ,
    severity       TEXT,
    notes          TEXT
);

CREATE TABLE IF NOT EXISTS medications (
    id            BIGSERIAL PRIMARY KEY,
    user_id       TEXT NOT NULL REFERENCES users(user_id),
    name          TEXT NOT NULL,
    dosage        TEXT,
    frequency     TEXT,
    start_date    TIMESTAMPTZ,
    end_date      TIMESTAMPTZ,
    prescribed_by TEXT,
    notes         TEXT
);

CREATE TABLE IF NOT EXISTS allergies (
    id       BIGSERIAL PRIMARY KEY,
    user_id  TEXT NOT NULL REFERENCES users(user_id),
    allergen TEXT NOT NULL,
    severity TEXT,
    reaction TEXT
);

CREATE TABLE IF NOT EXISTS vitals (
    id                BIGSERIAL PRIMARY KEY,
    user_id           TEXT NOT NULL REFERENCES users(user_id),
    date              TIMESTAMPTZ NOT NULL,
    systolic          INTEGER,
    diastolic         INTEGER,
    heart_rate        INTEGER,
    temperature       DOUBLE PRECISION,
    weight            DOUBLE PRECISION,
    blood_sugar       DOUBLE PRECISION,
    oxygen_saturation INTEGER,
    notes             TEXT
);

CREATE TABLE IF NOT EXISTS appointments (
    id        BIGSERIAL PRIMARY KEY,
    user_id   TEXT NOT NULL REFERENCES users(user_id),
    date      TIMESTAMPTZ NOT NULL,
    time      TEXT,
    doctor    TEXT,
    specialty TEXT,
    reason    TEXT,
    status    TEXT,
    notes     TEXT
);

CREATE TABLE IF NOT EXISTS ai_summaries (
    id              BIGSERIAL PRIMARY KEY,
    summary_id      TEXT NOT NULL UNIQUE,
    user_id         TEXT NOT NULL REFERENCES users(user_id),
    date            TIMESTAMPTZ NOT NULL,
    summary         TEXT NOT NULL,
    insights        JSONB NOT NULL,
    recommendations JSONB NOT NULL
);
`
