package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/skillstats/skillstats/internal/dataset"
	"github.com/skillstats/skillstats/internal/skills"
)

// ObservationSource yields the full set of raw observations for one ETL run.
type ObservationSource interface {
	Observations(ctx context.Context) ([]skills.RawObservation, error)
}

// parseObservations reads a long-format CSV export, resolving the manifest's
// columns against the header row. Rows with an unparsable period are skipped:
// a malformed year is a broken row, not a missing value. The observed value is
// kept as its raw token; numeric coercion belongs to the Reshaper.
func parseObservations(r io.Reader, name string, m *dataset.Manifest) ([]skills.RawObservation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &skills.DataSourceError{Source: name, Err: fmt.Errorf("read header: %w", err)}
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	required := []string{
		m.Columns.EntityCode,
		m.Columns.EntityLabel,
		m.Columns.Year,
		m.Columns.Category,
		m.Columns.Value,
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, &skills.DataSourceError{
				Source: name,
				Err:    fmt.Errorf("missing column %q in header", col),
			}
		}
	}

	var observations []skills.RawObservation
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &skills.DataSourceError{Source: name, Err: err}
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		year, err := strconv.Atoi(field(m.Columns.Year))
		if err != nil {
			continue
		}

		observations = append(observations, skills.RawObservation{
			EntityCode:  field(m.Columns.EntityCode),
			EntityLabel: field(m.Columns.EntityLabel),
			Year:        year,
			Category:    field(m.Columns.Category),
			Value:       field(m.Columns.Value),
		})
	}

	return observations, nil
}
