package api

import (
	"net/http"
	"sync"

	"github.com/starford/graflint/internal/diag"
)

// ReportStore holds the most recent validation summary. Watch mode
// replaces it after every run; readers get a consistent snapshot.
type ReportStore struct {
	mu     sync.RWMutex
	latest *diag.Summary
}

// NewReportStore returns an empty store.
func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// Set replaces the stored summary.
func (s *ReportStore) Set(sum diag.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &sum
}

// Get returns the stored summary, or false when no run has completed yet.
func (s *ReportStore) Get() (diag.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return diag.Summary{}, false
	}
	return *s.latest, true
}

// Handler serves report endpoints.
type Handler struct {
	reports *ReportStore
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(reports *ReportStore) *Handler {
	return &Handler{reports: reports}
}

// GetReport returns the latest validation summary as JSON.
func (h *Handler) GetReport(w http.ResponseWriter, _ *http.Request) {
	sum, ok := h.reports.Get()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("no validation run has completed yet"))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
