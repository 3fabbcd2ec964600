package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/skillstats/skillstats/internal/dataset"
	"github.com/skillstats/skillstats/internal/skills"
)

// Config holds HTTP source configuration
type Config struct {
	URL            string
	Timeout        time.Duration
	MaxConcurrency int64
	RetryCount     int
	RetryDelay     time.Duration
}

// DefaultConfig returns default configuration for an export URL
func DefaultConfig(url string) Config {
	return Config{
		URL:            url,
		Timeout:        30 * time.Second,
		MaxConcurrency: 2,
		RetryCount:     1,
		RetryDelay:     200 * time.Millisecond,
	}
}

// HTTPSource downloads a CSV export over HTTP. Concurrent runs against the
// same source are bounded by a semaphore so a busy publisher is not hammered.
type HTTPSource struct {
	config   Config
	manifest *dataset.Manifest
	client   *http.Client
	sem      *semaphore.Weighted
}

// NewHTTPSource creates a source that downloads the export from a URL
func NewHTTPSource(config Config, m *dataset.Manifest) *HTTPSource {
	return &HTTPSource{
		config:   config,
		manifest: m,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		sem: semaphore.NewWeighted(config.MaxConcurrency),
	}
}

// Observations implements the ObservationSource interface. It downloads the
// export with a bounded retry; any failure after the last attempt is a
// DataSourceError, so the caller writes nothing.
func (s *HTTPSource) Observations(ctx context.Context) ([]skills.RawObservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, &skills.DataSourceError{Source: s.config.URL, Err: fmt.Errorf("semaphore acquire: %w", err)}
	}
	defer s.sem.Release(1)

	var lastErr error
	for attempt := 0; attempt <= s.config.RetryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(s.config.RetryDelay)
		}

		observations, err := s.fetch(ctx)
		if err == nil {
			return observations, nil
		}
		lastErr = err
	}

	var dsErr *skills.DataSourceError
	if errors.As(lastErr, &dsErr) {
		return nil, lastErr
	}
	return nil, &skills.DataSourceError{Source: s.config.URL, Err: lastErr}
}

func (s *HTTPSource) fetch(ctx context.Context) ([]skills.RawObservation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return parseObservations(resp.Body, s.config.URL, s.manifest)
}
