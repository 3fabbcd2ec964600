package etl

import (
	"testing"

	"github.com/skillstats/skillstats/internal/dataset"
	"github.com/skillstats/skillstats/internal/skills"
)

func obs(code, label string, year int, category, value string) skills.RawObservation {
	return skills.RawObservation{
		EntityCode:  code,
		EntityLabel: label,
		Year:        year,
		Category:    category,
		Value:       value,
	}
}

func TestReshape_OneRowPerEntityYear(t *testing.T) {
	input := []skills.RawObservation{
		obs("AUT", "Austria", 2023, "BASIC", "22.9956"),
		obs("AUT", "Austria", 2023, "ABOVE_BASIC", "53.2072"),
		obs("FIN", "Finland", 2023, "BASIC", "15.4"),
		obs("FIN", "Finland", 2023, "ABOVE_BASIC", "61.2"),
		obs("AUT", "Austria", 2022, "BASIC", "24.1"),
	}

	rows := Reshape(input, dataset.Default())

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	aut := rows[0]
	if aut.EntityCode != "AUT" || aut.Year != 2023 {
		t.Fatalf("expected first row AUT/2023, got %s/%d", aut.EntityCode, aut.Year)
	}
	if aut.PctBasic == nil || *aut.PctBasic != 22.9956 {
		t.Errorf("expected pct_basic=22.9956, got %v", aut.PctBasic)
	}
	if aut.PctAboveBasic == nil || *aut.PctAboveBasic != 53.2072 {
		t.Errorf("expected pct_above_basic=53.2072, got %v", aut.PctAboveBasic)
	}
}

func TestReshape_DropsOtherCategories(t *testing.T) {
	input := []skills.RawObservation{
		obs("FIN", "Finland", 2023, "LOW", "8.3"),
		obs("FIN", "Finland", 2023, "STANDARD", "12.0"),
	}

	rows := Reshape(input, dataset.Default())

	if len(rows) != 0 {
		t.Errorf("expected no rows for unrecognized categories, got %d", len(rows))
	}
}

func TestReshape_UnparsableValueIsMissingNotZero(t *testing.T) {
	input := []skills.RawObservation{
		obs("BIH", "Bosnia and Herzegovina", 2023, "BASIC", "30.2"),
		obs("BIH", "Bosnia and Herzegovina", 2023, "ABOVE_BASIC", "_Z"),
	}

	rows := Reshape(input, dataset.Default())

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].PctAboveBasic != nil {
		t.Errorf("expected missing pct_above_basic, got %v", *rows[0].PctAboveBasic)
	}
	if rows[0].PctBasic == nil {
		t.Error("expected pct_basic to be present")
	}
}

func TestReshape_FirstWinsOnDuplicates(t *testing.T) {
	input := []skills.RawObservation{
		obs("AUT", "Austria", 2023, "BASIC", "22.9956"),
		obs("AUT", "Austria", 2023, "BASIC", "99.9"),
	}

	rows := Reshape(input, dataset.Default())

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].PctBasic == nil || *rows[0].PctBasic != 22.9956 {
		t.Errorf("expected first observation to win, got %v", rows[0].PctBasic)
	}
}

func TestReshape_UniformSchema(t *testing.T) {
	// A category never seen anywhere in the source must still produce a
	// present (missing) column on every row.
	input := []skills.RawObservation{
		obs("AUT", "Austria", 2023, "BASIC", "22.9956"),
		obs("FIN", "Finland", 2023, "BASIC", "15.4"),
	}

	rows := Reshape(input, dataset.Default())

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.PctAboveBasic != nil {
			t.Errorf("expected missing pct_above_basic for %s, got %v", row.EntityCode, *row.PctAboveBasic)
		}
		record := row.Record()
		if record.PctAboveBasic != 0 {
			t.Errorf("expected persisted pct_above_basic=0 for %s, got %f", row.EntityCode, record.PctAboveBasic)
		}
	}
}

func TestReshape_EmptyInput(t *testing.T) {
	rows := Reshape(nil, dataset.Default())
	if len(rows) != 0 {
		t.Errorf("expected empty output, got %d rows", len(rows))
	}
}

func TestPivotRow_RecordCoercesMissingToZero(t *testing.T) {
	basic := 30.2
	row := PivotRow{
		EntityCode:  "BIH",
		EntityLabel: "Bosnia and Herzegovina",
		Year:        2023,
		PctBasic:    &basic,
	}

	record := row.Record()

	if record.PctBasic != 30.2 {
		t.Errorf("expected pct_basic=30.2, got %f", record.PctBasic)
	}
	if record.PctAboveBasic != 0 {
		t.Errorf("expected pct_above_basic=0, got %f", record.PctAboveBasic)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
		ok       bool
	}{
		{name: "numeric", raw: "53.2072", expected: 53.2072, ok: true},
		{name: "integer", raw: "40", expected: 40, ok: true},
		{name: "sentinel", raw: "_Z", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "nan token", raw: "NaN", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := parseValue(tt.raw)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && v != tt.expected {
				t.Errorf("expected %f, got %f", tt.expected, v)
			}
		})
	}
}
