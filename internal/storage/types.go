package storage

import (
	"context"

	"github.com/skillstats/skillstats/internal/skills"
)

// RecordStore defines the interface for persisting and reading back the
// normalized skill table. The Reshaper only ever upserts; the aggregator only
// ever reads the full table.
type RecordStore interface {
	// UpsertRecords writes records in a single transaction, overwriting all
	// non-key columns of existing (entity_code, year) rows. It returns the
	// number of rows written.
	UpsertRecords(ctx context.Context, records []skills.SkillRecord) (int, error)

	// ListRecords reads the full normalized table
	ListRecords(ctx context.Context) ([]skills.SkillRecord, error)

	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error

	// Close closes the storage connection
	Close() error
}
