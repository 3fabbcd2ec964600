package sqlite

// Schema defines the SQLite database schema
const Schema = `
-- Normalized skill proficiency table: one row per (entity_code, year)
CREATE TABLE IF NOT EXISTS skill_records (
	entity_code TEXT NOT NULL,
	entity_label TEXT NOT NULL,
	year INTEGER NOT NULL,
	pct_basic REAL NOT NULL DEFAULT 0,
	pct_above_basic REAL NOT NULL DEFAULT 0,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (entity_code, year)
);

CREATE INDEX IF NOT EXISTS idx_skill_records_year ON skill_records(year);
`
