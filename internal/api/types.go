package api

// HealthResponse represents health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents readiness check response
type ReadyResponse struct {
	Ready   bool     `json:"ready"`
	Reasons []string `json:"reasons,omitempty"`
}

// ErrorResponse represents an error-shaped payload. Aggregation failures are
// reported through this shape with a 200 status so the presentation layer can
// render a degraded state instead of crashing on a protocol fault.
type ErrorResponse struct {
	Error string `json:"error"`
}
