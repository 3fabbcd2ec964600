package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skillstats/skillstats/internal/dataset"
	"github.com/skillstats/skillstats/internal/skills"
)

func TestFileSource_Observations(t *testing.T) {
	src := NewFileSource("../../fixtures/data/sample.csv", dataset.Default())

	observations, err := src.Observations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 13 data rows minus the one with an unparsable period
	if len(observations) != 12 {
		t.Fatalf("expected 12 observations, got %d", len(observations))
	}

	first := observations[0]
	if first.EntityCode != "AUT" || first.Year != 2023 || first.Category != "BASIC" {
		t.Errorf("unexpected first observation: %+v", first)
	}
	if first.Value != "22.9956" {
		t.Errorf("expected raw value token kept, got %q", first.Value)
	}

	for _, o := range observations {
		if o.EntityCode == "XXX" {
			t.Error("expected bad-year row to be skipped")
		}
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource("../../fixtures/data/does-not-exist.csv", dataset.Default())

	_, err := src.Observations(context.Background())

	var dsErr *skills.DataSourceError
	if !errors.As(err, &dsErr) {
		t.Fatalf("expected DataSourceError, got %v", err)
	}
	if dsErr.Source != "../../fixtures/data/does-not-exist.csv" {
		t.Errorf("expected source path in error, got %q", dsErr.Source)
	}
}

func TestParseObservations_MissingColumn(t *testing.T) {
	csvData := "REF_AREA,REF_AREA_LABEL,TIME_PERIOD,COMP_BREAKDOWN_1\nAUT,Austria,2023,BASIC\n"

	_, err := parseObservations(strings.NewReader(csvData), "inline", dataset.Default())

	var dsErr *skills.DataSourceError
	if !errors.As(err, &dsErr) {
		t.Fatalf("expected DataSourceError, got %v", err)
	}
	if !strings.Contains(dsErr.Error(), "OBS_VALUE") {
		t.Errorf("expected missing column named in error, got %v", dsErr)
	}
}

func TestParseObservations_TrimsFields(t *testing.T) {
	csvData := "REF_AREA,REF_AREA_LABEL,TIME_PERIOD,COMP_BREAKDOWN_1,OBS_VALUE\n AUT , Austria , 2023 , BASIC , 22.9956 \n"

	observations, err := parseObservations(strings.NewReader(csvData), "inline", dataset.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(observations))
	}
	if observations[0].EntityCode != "AUT" || observations[0].Value != "22.9956" {
		t.Errorf("expected trimmed fields, got %+v", observations[0])
	}
}

func TestParseObservations_ShortRow(t *testing.T) {
	// A truncated row resolves its missing trailing fields as empty tokens
	csvData := "REF_AREA,REF_AREA_LABEL,TIME_PERIOD,COMP_BREAKDOWN_1,OBS_VALUE\nAUT,Austria,2023,BASIC\n"

	observations, err := parseObservations(strings.NewReader(csvData), "inline", dataset.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(observations))
	}
	if observations[0].Value != "" {
		t.Errorf("expected empty value for short row, got %q", observations[0].Value)
	}
}
