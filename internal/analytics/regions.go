package analytics

import "github.com/skillstats/skillstats/internal/skills"

// RegionSet is the closed set of aggregate-region entity codes. The partition
// into country and region is a pure function of the entity code and is
// applied identically to rankings, growth, and trend computations.
type RegionSet map[string]struct{}

// NewRegionSet builds a RegionSet from entity codes
func NewRegionSet(codes ...string) RegionSet {
	s := make(RegionSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// DefaultRegions returns the fixed region-code set of the ITU dataset
func DefaultRegions() RegionSet {
	return NewRegionSet(skills.DefaultRegionCodes...)
}

// IsRegion reports whether a code identifies an aggregate region
func (s RegionSet) IsRegion(code string) bool {
	_, ok := s[code]
	return ok
}
