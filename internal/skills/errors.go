package skills

import "fmt"

// DataSourceError reports an unreadable or absent input source. It is fatal
// to a Reshaper run: no partial table is written.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("data source %s: unreadable", e.Source)
	}
	return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// MissingConfigurationError reports required connection or location
// information absent at startup.
type MissingConfigurationError struct {
	Field string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", e.Field)
}

// ComputationError wraps an unexpected failure during aggregation. It is
// caught at the aggregator boundary and reported as an error-shaped response
// value, never propagated as a crash.
type ComputationError struct {
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("aggregation failed: %v", e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }
