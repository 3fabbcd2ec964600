package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/skillstats/skillstats/internal/skills"
)

// Store implements RecordStore using SQLite
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store with the given database path
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// UpsertRecords writes all records in a single transaction so a failed ETL
// run leaves no partially transformed table behind.
func (s *Store) UpsertRecords(ctx context.Context, records []skills.SkillRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO skill_records (entity_code, entity_label, year, pct_basic, pct_above_basic)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(entity_code, year) DO UPDATE SET
			entity_label = excluded.entity_label,
			pct_basic = excluded.pct_basic,
			pct_above_basic = excluded.pct_above_basic,
			updated_at = CURRENT_TIMESTAMP
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.EntityCode,
			r.EntityLabel,
			r.Year,
			r.PctBasic,
			r.PctAboveBasic,
		); err != nil {
			return 0, fmt.Errorf("failed to upsert record %s/%d: %w", r.EntityCode, r.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit upsert: %w", err)
	}

	return len(records), nil
}

// ListRecords reads the full normalized table in a stable order
func (s *Store) ListRecords(ctx context.Context) ([]skills.SkillRecord, error) {
	query := `
		SELECT entity_code, entity_label, year, pct_basic, pct_above_basic
		FROM skill_records
		ORDER BY entity_code, year
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []skills.SkillRecord
	for rows.Next() {
		var r skills.SkillRecord
		if err := rows.Scan(
			&r.EntityCode,
			&r.EntityLabel,
			&r.Year,
			&r.PctBasic,
			&r.PctAboveBasic,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Ping reports whether the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
