// Package handler exposes the audit trail's read-back endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"phytoguard/internal/audit"
	dErrors "phytoguard/pkg/domerrors"
	"phytoguard/pkg/platform/httputil"
)

// Lister reads back recorded audit events.
type Lister interface {
	List(ctx context.Context, location string) ([]audit.Event, error)
}

// Handler wires the audit endpoints to the audit trail.
type Handler struct {
	lister Lister
	logger *slog.Logger
}

// New constructs an audit handler with its dependencies.
func New(lister Lister, logger *slog.Logger) *Handler {
	return &Handler{
		lister: lister,
		logger: logger,
	}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/events", h.HandleList)
}

// HandleList handles GET /audit/events?location=<code> requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	location := r.URL.Query().Get("location")
	if location == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "location query parameter is required"))
		return
	}

	events, err := h.lister.List(ctx, location)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit event listing failed",
			"location", location,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromEvents(events))
}

// EventResponse is one audit event on the wire.
type EventResponse struct {
	OccurredAt   time.Time `json:"occurred_at"`
	ReportID     string    `json:"report_id"`
	PracticeType string    `json:"practice_type"`
	Location     string    `json:"location"`
	Status       string    `json:"status"`
	RiskLevel    string    `json:"risk_level"`
	RiskScore    float64   `json:"risk_score"`
	Degraded     bool      `json:"degraded,omitempty"`
}

// ListResponse is the HTTP response for GET /audit/events.
type ListResponse struct {
	Events []EventResponse `json:"events"`
}

// FromEvents converts domain audit events to their HTTP response form.
func FromEvents(events []audit.Event) ListResponse {
	resp := ListResponse{Events: make([]EventResponse, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, EventResponse{
			OccurredAt:   e.Timestamp,
			ReportID:     e.ReportID,
			PracticeType: e.PracticeType,
			Location:     e.Location,
			Status:       e.Status,
			RiskLevel:    e.RiskLevel,
			RiskScore:    e.RiskScore,
			Degraded:     e.Degraded,
		})
	}
	return resp
}
