package etl

import (
	"math"
	"strconv"

	"github.com/skillstats/skillstats/internal/dataset"
	"github.com/skillstats/skillstats/internal/skills"
)

// PivotRow is the Reshaper's wide output row. Percentages are pointers so a
// value that never appeared in the source stays distinguishable from a
// genuine zero until persistence; both fields are always present on every row
// so downstream consumers see a uniform schema.
type PivotRow struct {
	EntityCode    string
	EntityLabel   string
	Year          int
	PctBasic      *float64
	PctAboveBasic *float64
}

// Record materializes the persisted form of the row. This is the single point
// where the missing-value policy is applied: a percentage with no retained
// observation is stored as 0.
func (p PivotRow) Record() skills.SkillRecord {
	r := skills.SkillRecord{
		EntityCode:  p.EntityCode,
		EntityLabel: p.EntityLabel,
		Year:        p.Year,
	}
	if p.PctBasic != nil {
		r.PctBasic = *p.PctBasic
	}
	if p.PctAboveBasic != nil {
		r.PctAboveBasic = *p.PctAboveBasic
	}
	return r
}

type groupKey struct {
	code  string
	label string
	year  int
}

// Reshape filters raw observations to the manifest's two retained skill
// categories and pivots them into one wide row per (entity, year). Unparsable
// values become missing, not zero. When a group carries more than one
// observation for the same category, the first wins. Output order is the
// first-seen order of each group, so the result is deterministic for a given
// input. An input with no retained observations yields an empty slice.
func Reshape(observations []skills.RawObservation, m *dataset.Manifest) []PivotRow {
	rows := make(map[groupKey]*PivotRow)
	var order []groupKey

	for _, obs := range observations {
		if obs.Category != m.Categories.Basic && obs.Category != m.Categories.AboveBasic {
			continue
		}

		k := groupKey{code: obs.EntityCode, label: obs.EntityLabel, year: obs.Year}
		row, ok := rows[k]
		if !ok {
			row = &PivotRow{
				EntityCode:  obs.EntityCode,
				EntityLabel: obs.EntityLabel,
				Year:        obs.Year,
			}
			rows[k] = row
			order = append(order, k)
		}

		value, ok := parseValue(obs.Value)
		if !ok {
			continue
		}

		switch obs.Category {
		case m.Categories.Basic:
			if row.PctBasic == nil {
				row.PctBasic = &value
			}
		case m.Categories.AboveBasic:
			if row.PctAboveBasic == nil {
				row.PctAboveBasic = &value
			}
		}
	}

	result := make([]PivotRow, 0, len(order))
	for _, k := range order {
		result = append(result, *rows[k])
	}
	return result
}

// parseValue coerces a raw observed value to a number. Sentinels like "_Z"
// and non-finite parses are missing.
func parseValue(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
