package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/savegress/vaxtriage/internal/engine"
	"github.com/savegress/vaxtriage/internal/export"
	"github.com/savegress/vaxtriage/internal/quality"
	"github.com/savegress/vaxtriage/pkg/models"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	engine *engine.Engine
}

// Response helpers

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: false, Error: message})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ListRecords returns the current display collection
func (h *Handlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.engine.Display()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// GetRecord returns one classified record by id
func (h *Handlers) GetRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID := chi.URLParam(r, "docID")

	rec, err := h.engine.Record(docID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}

	state, err := h.engine.Tracker().State(ctx, docID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.ClassifiedRecord{
		Record:     rec,
		Severity:   quality.SeverityOf(rec),
		Risk:       quality.RiskClass(rec),
		Readiness:  quality.ComputeReadiness(rec),
		Reviewed:   state.Reviewed,
		ReviewedAt: state.ReviewedAt,
	})
}

// GetAdvisories returns the ordered documentation gaps for a record
func (h *Handlers) GetAdvisories(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	advisories, err := h.engine.Advisories(docID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}

	resp := map[string]interface{}{
		"doc_id":     docID,
		"advisories": advisories,
		"count":      len(advisories),
	}
	if len(advisories) == 0 {
		resp["message"] = quality.NoGapsMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

// SetReviewed toggles the reviewed disposition for a record
func (h *Handlers) SetReviewed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID := chi.URLParam(r, "docID")

	var req struct {
		Reviewed bool `json:"reviewed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.engine.ToggleReview(ctx, docID, req.Reviewed); err != nil {
		if errors.Is(err, engine.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	state, err := h.engine.Tracker().State(ctx, docID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// GetReviewHistory returns the audit trail of disposition changes
func (h *Handlers) GetReviewHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docID := chi.URLParam(r, "docID")

	if _, err := h.engine.Record(docID); err != nil {
		writeError(w, http.StatusNotFound, "Record not found")
		return
	}

	events, err := h.engine.Tracker().History(ctx, docID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"doc_id": docID,
		"events": events,
		"count":  len(events),
	})
}

// UpdateFilters replaces the filter state
func (h *Handlers) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var fs models.FilterState
	if err := json.NewDecoder(r.Body).Decode(&fs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.engine.SetFilter(fs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, fs)
}

// GetFilters returns the current filter state
func (h *Handlers) GetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Filter())
}

// GetSummary returns severity counts over the date-filtered collection
func (h *Handlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Summary())
}

// GetGuidance returns the static field guidance table
func (h *Handlers) GetGuidance(w http.ResponseWriter, r *http.Request) {
	entries := quality.GuidanceTable()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// ExportCSV streams the date-filtered collection as a CSV download
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records := h.engine.DateFiltered()
	if len(records) == 0 {
		writeError(w, http.StatusConflict, export.ErrNoRows.Error())
		return
	}

	fs := h.engine.Filter()
	filename := fmt.Sprintf("immunization_audit_%s_%s", fs.From, fs.To)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))

	tracker := h.engine.Tracker()
	// Headers are sent; a write error here just truncates the download.
	export.WriteCSV(w, records, func(docID string) (bool, *time.Time) {
		state, err := tracker.State(ctx, docID)
		if err != nil {
			return false, nil
		}
		return state.Reviewed, state.ReviewedAt
	})
}
