package analytics

import (
	"context"
	"fmt"

	"github.com/skillstats/skillstats/internal/skills"
	"github.com/skillstats/skillstats/internal/storage"
)

// Aggregator answers dashboard queries against the record store. Each query
// reloads the full normalized table and recomputes every section from
// scratch; there is no cached or shared mutable state between queries.
type Aggregator struct {
	store   storage.RecordStore
	regions RegionSet
}

// NewAggregator creates a new aggregator over a record store
func NewAggregator(store storage.RecordStore, regions RegionSet) *Aggregator {
	return &Aggregator{store: store, regions: regions}
}

// Dashboard computes the aggregate result for the requested range. Failures
// are fully contained per request: a storage error or a panic inside the
// computation comes back as a ComputationError value, never as a crash of the
// serving layer.
func (a *Aggregator) Dashboard(ctx context.Context, q Query) (result *Dashboard, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &skills.ComputationError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	records, err := a.store.ListRecords(ctx)
	if err != nil {
		return nil, &skills.ComputationError{Err: err}
	}

	return Compute(records, q, a.regions), nil
}
