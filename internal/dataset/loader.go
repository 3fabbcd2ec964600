package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skillstats/skillstats/internal/skills"
)

// Default returns the manifest for the ITU digital-skills export this
// pipeline was built around. Sibling exports with different column headers
// can supply their own manifest file instead.
func Default() *Manifest {
	return &Manifest{
		Name: "itu-digital-skills",
		Columns: Columns{
			EntityCode:  "REF_AREA",
			EntityLabel: "REF_AREA_LABEL",
			Year:        "TIME_PERIOD",
			Category:    "COMP_BREAKDOWN_1",
			Value:       "OBS_VALUE",
		},
		Categories: Categories{
			Basic:      skills.CategoryBasic,
			AboveBasic: skills.CategoryAboveBasic,
		},
		RegionCodes: append([]string(nil), skills.DefaultRegionCodes...),
	}
}

// Load parses a manifest file. A manifest without an explicit region-code set
// inherits the default one.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &skills.DataSourceError{Source: path, Err: err}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if len(m.RegionCodes) == 0 {
		m.RegionCodes = append([]string(nil), skills.DefaultRegionCodes...)
	}

	return &m, nil
}
