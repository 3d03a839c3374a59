package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"phytoguard/internal/compliance/models"
	"phytoguard/internal/compliance/service"
	"phytoguard/pkg/platform/httputil"
)

// Checker defines the interface for compliance operations.
type Checker interface {
	Check(ctx context.Context, req service.CheckRequest) (*models.ComplianceReport, error)
}

// Handler wires compliance endpoints to the compliance service.
type Handler struct {
	checker Checker
	logger  *slog.Logger
}

// New constructs a compliance handler with its dependencies.
func New(checker Checker, logger *slog.Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compliance/check", h.HandleCheck)
}

// HandleCheck handles POST /compliance/check requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req CheckRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.checker.Check(ctx, req.Parsed())
	if err != nil {
		h.logger.ErrorContext(ctx, "compliance check rejected",
			"practice_type", req.PracticeType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "compliance check served",
		"practice_type", req.PracticeType,
		"status", report.OverallCompliance,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}
