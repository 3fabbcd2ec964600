package dataset

// Manifest describes the layout of a raw observation export: which source
// columns hold each field, which skill-category codes are retained by the
// pivot, and which entity codes are aggregate regions rather than countries.
type Manifest struct {
	Name        string     `yaml:"name"`
	Columns     Columns    `yaml:"columns"`
	Categories  Categories `yaml:"categories"`
	RegionCodes []string   `yaml:"regionCodes,omitempty"`
}

// Columns maps the normalized fields to source column headers.
type Columns struct {
	EntityCode  string `yaml:"entityCode"`
	EntityLabel string `yaml:"entityLabel"`
	Year        string `yaml:"year"`
	Category    string `yaml:"category"`
	Value       string `yaml:"value"`
}

// Categories names the two skill-category discriminator values the Reshaper
// keeps. Everything else in the source is dropped.
type Categories struct {
	Basic      string `yaml:"basic"`
	AboveBasic string `yaml:"aboveBasic"`
}

// ValidationError represents a validation error for a specific file
type ValidationError struct {
	File    string
	Path    string
	Message string
}
