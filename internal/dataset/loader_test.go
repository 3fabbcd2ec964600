package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillstats/skillstats/internal/skills"
)

func TestDefault(t *testing.T) {
	m := Default()

	if m.Columns.EntityCode != "REF_AREA" || m.Columns.Value != "OBS_VALUE" {
		t.Errorf("unexpected default columns: %+v", m.Columns)
	}
	if m.Categories.Basic != skills.CategoryBasic || m.Categories.AboveBasic != skills.CategoryAboveBasic {
		t.Errorf("unexpected default categories: %+v", m.Categories)
	}
	if len(m.RegionCodes) != len(skills.DefaultRegionCodes) {
		t.Errorf("expected default region codes, got %v", m.RegionCodes)
	}
}

func TestLoad(t *testing.T) {
	m, err := Load("../../fixtures/manifest/valid/itu-digital-skills.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Name != "itu-digital-skills" {
		t.Errorf("expected name itu-digital-skills, got %q", m.Name)
	}
	if m.Columns.Year != "TIME_PERIOD" {
		t.Errorf("expected year column TIME_PERIOD, got %q", m.Columns.Year)
	}
	if len(m.RegionCodes) != 11 {
		t.Errorf("expected 11 region codes, got %d", len(m.RegionCodes))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")

	var dsErr *skills.DataSourceError
	if !errors.As(err, &dsErr) {
		t.Fatalf("expected DataSourceError, got %v", err)
	}
}

func TestLoad_InheritsDefaultRegionCodes(t *testing.T) {
	content := `name: minimal
columns:
  entityCode: A
  entityLabel: B
  year: C
  category: D
  value: E
categories:
  basic: BASIC
  aboveBasic: ABOVE_BASIC
`
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.RegionCodes) != len(skills.DefaultRegionCodes) {
		t.Errorf("expected inherited region codes, got %v", m.RegionCodes)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("columns: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
