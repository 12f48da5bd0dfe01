package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snaplink/snaplink/internal/auth"
	"github.com/snaplink/snaplink/internal/handler/dto"
	"github.com/snaplink/snaplink/internal/service"
)

// AnalyticsHandler serves the click-analytics endpoints.
type AnalyticsHandler struct {
	svc    *service.AnalyticsService
	logger *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(svc *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		svc:    svc,
		logger: logger,
	}
}

// LinkSummary handles GET /links/analytics/{id}.
func (h *AnalyticsHandler) LinkSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Link ID is required")
		return
	}

	summary, err := h.svc.LinkSummary(r.Context(), auth.OwnerIDFromContext(r.Context()), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LinkSummaryResponse{
		LinkID:         id,
		TotalClicks:    summary.TotalClicks,
		DeviceSummary:  summary.DeviceSummary,
		BrowserSummary: summary.BrowserSummary,
		OSSummary:      summary.OSSummary,
	})
}

// DashboardStats handles GET /links/dashboard/stats.
func (h *AnalyticsHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.DashboardStats(r.Context(), auth.OwnerIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardStatsResponse{
		TotalClicks:    stats.TotalClicks,
		DateWiseClicks: stats.DateWiseClicks,
		DeviceClicks:   stats.DeviceClicks,
	})
}

// ClickFeed handles GET /links/all-clicks.
func (h *AnalyticsHandler) ClickFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := parsePositiveInt(query.Get("page"), 1)
	limit := parsePositiveInt(query.Get("limit"), 0)

	feed, err := h.svc.ClickFeed(r.Context(), auth.OwnerIDFromContext(r.Context()), page, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToClickFeedResponse(feed.Clicks, feed.Page, feed.TotalPages, feed.TotalClicks))
}

// handleServiceError maps service errors to HTTP responses.
func (h *AnalyticsHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLinkNotFound):
		writeError(w, http.StatusNotFound, "LINK_NOT_FOUND", "Link not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Link belongs to a different account")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
