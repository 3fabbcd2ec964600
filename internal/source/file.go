package source

import (
	"context"
	"os"

	"github.com/skillstats/skillstats/internal/dataset"
	"github.com/skillstats/skillstats/internal/skills"
)

// FileSource reads raw observations from a local CSV export
type FileSource struct {
	path     string
	manifest *dataset.Manifest
}

// NewFileSource creates a source over a local CSV file
func NewFileSource(path string, m *dataset.Manifest) *FileSource {
	return &FileSource{path: path, manifest: m}
}

// Observations implements the ObservationSource interface
func (s *FileSource) Observations(ctx context.Context) ([]skills.RawObservation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &skills.DataSourceError{Source: s.path, Err: err}
	}
	defer f.Close()

	return parseObservations(f, s.path, s.manifest)
}
