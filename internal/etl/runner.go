package etl

import (
	"context"
	"fmt"

	"github.com/skillstats/skillstats/internal/dataset"
	"github.com/skillstats/skillstats/internal/skills"
	"github.com/skillstats/skillstats/internal/source"
	"github.com/skillstats/skillstats/internal/storage"
)

// RunStats summarizes one ETL run
type RunStats struct {
	Extracted int
	Retained  int
	Upserted  int
}

// Runner orchestrates one extract-transform-load pass: observations come from
// the source, are reshaped into wide rows, and are upserted as a single
// transaction. A failure at any stage leaves the table untouched.
type Runner struct {
	source   source.ObservationSource
	store    storage.RecordStore
	manifest *dataset.Manifest
}

// NewRunner creates a new ETL runner
func NewRunner(src source.ObservationSource, store storage.RecordStore, m *dataset.Manifest) *Runner {
	return &Runner{source: src, store: store, manifest: m}
}

// Run executes the ETL pass
func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	observations, err := r.source.Observations(ctx)
	if err != nil {
		return RunStats{}, err
	}

	rows := Reshape(observations, r.manifest)
	stats := RunStats{Extracted: len(observations), Retained: len(rows)}

	// Nothing retained is an empty dataset, not a failure
	if len(rows) == 0 {
		return stats, nil
	}

	records := make([]skills.SkillRecord, len(rows))
	for i, row := range rows {
		records[i] = row.Record()
	}

	upserted, err := r.store.UpsertRecords(ctx, records)
	if err != nil {
		return stats, fmt.Errorf("failed to load records: %w", err)
	}
	stats.Upserted = upserted

	return stats, nil
}
