package skills

// RawObservation is a single long-format row from the source dataset: one
// observed value for one (entity, year, skill category). It is consumed once
// per ETL run and never persisted. Value carries the raw token from the
// source, which may be a numeric string or a missing-value sentinel like "_Z".
type RawObservation struct {
	EntityCode  string
	EntityLabel string
	Year        int
	Category    string
	Value       string
}

// SkillRecord is the normalized unit of truth: at most one row per
// (EntityCode, Year). Percentages are stored with missing coerced to 0; that
// coercion happens exactly once, when the Reshaper output is materialized for
// persistence.
type SkillRecord struct {
	EntityCode    string  `json:"entity_code"`
	EntityLabel   string  `json:"entity_label"`
	Year          int     `json:"year"`
	PctBasic      float64 `json:"pct_basic"`
	PctAboveBasic float64 `json:"pct_above_basic"`
}

// Skill category discriminators retained by the Reshaper in the ITU export.
// All other categories are out-of-scope skill tiers and are dropped silently.
const (
	CategoryBasic      = "BASIC"
	CategoryAboveBasic = "ABOVE_BASIC"
)

// DefaultRegionCodes is the closed set of aggregate-region entity codes. Any
// entity code outside this set is a country.
var DefaultRegionCodes = []string{
	"EMU", "EUU", "OED", "CEB", "EAS", "LCN", "MEA", "NAC", "SAS", "SSF", "WLD",
}
