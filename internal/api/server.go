package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/skillstats/skillstats/internal/analytics"
	"github.com/skillstats/skillstats/internal/storage"
)

// Default analysis window when the caller supplies no years, matching the
// published dashboard.
const (
	defaultStartYear = 2021
	defaultEndYear   = 2023
)

// Server is the HTTP API server
type Server struct {
	aggregator *analytics.Aggregator
	store      storage.RecordStore
	server     *http.Server
}

// NewServer creates a new API server
func NewServer(aggregator *analytics.Aggregator, store storage.RecordStore, addr string) *Server {
	s := &Server{
		aggregator: aggregator,
		store:      store,
	}

	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	// Dashboard endpoint
	mux.HandleFunc("/v1/dashboard", s.handleDashboard)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      loggingMiddleware(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleReady handles GET /readyz
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ready := true
	reasons := []string{}

	if err := s.store.Ping(r.Context()); err != nil {
		ready = false
		reasons = append(reasons, fmt.Sprintf("store unreachable: %v", err))
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, ReadyResponse{Ready: ready, Reasons: reasons})
}

// handleDashboard handles GET /v1/dashboard. It accepts either the range form
// (?start_year=&end_year=) or the legacy single-year form (?year=), treated as
// the degenerate range.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query, err := parseDashboardQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	dashboard, err := s.aggregator.Dashboard(r.Context(), query)
	if err != nil {
		// Error-shaped payload, not a protocol fault: the dashboard renders a
		// degraded state from it.
		log.Printf("dashboard query failed: %v", err)
		respondJSON(w, http.StatusOK, ErrorResponse{Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}

func parseDashboardQuery(r *http.Request) (analytics.Query, error) {
	params := r.URL.Query()

	if yearStr := params.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return analytics.Query{}, fmt.Errorf("invalid year: %q", yearStr)
		}
		return analytics.Query{StartYear: year, EndYear: year}, nil
	}

	query := analytics.Query{StartYear: defaultStartYear, EndYear: defaultEndYear}

	if startStr := params.Get("start_year"); startStr != "" {
		start, err := strconv.Atoi(startStr)
		if err != nil {
			return analytics.Query{}, fmt.Errorf("invalid start_year: %q", startStr)
		}
		query.StartYear = start
	}

	if endStr := params.Get("end_year"); endStr != "" {
		end, err := strconv.Atoi(endStr)
		if err != nil {
			return analytics.Query{}, fmt.Errorf("invalid end_year: %q", endStr)
		}
		query.EndYear = end
	}

	return query, nil
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
