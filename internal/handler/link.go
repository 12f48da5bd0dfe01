package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snaplink/snaplink/internal/auth"
	"github.com/snaplink/snaplink/internal/handler/dto"
	"github.com/snaplink/snaplink/internal/service"
)

// LinkHandler handles HTTP requests for link management.
type LinkHandler struct {
	svc    *service.LinkService
	logger *slog.Logger
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(svc *service.LinkService, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /links.
func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateLinkInput{
		OwnerID:        auth.OwnerIDFromContext(r.Context()),
		DestinationURL: req.DestinationURL,
		ShortCode:      req.ShortCode,
		ExpiresAt:      req.Expiration,
		Remarks:        req.Remarks,
	}

	link, err := h.svc.CreateLink(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("link_created",
		"link_id", link.ID,
		"short_code", link.ShortCode,
		"has_custom_code", req.ShortCode != "",
	)

	writeJSON(w, http.StatusCreated, dto.ToLinkResponse(link))
}

// Get handles GET /links/{id}.
func (h *LinkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Link ID is required")
		return
	}

	link, err := h.svc.GetLink(r.Context(), auth.OwnerIDFromContext(r.Context()), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLinkResponse(link))
}

// List handles GET /links.
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := service.ListLinksInput{
		OwnerID: auth.OwnerIDFromContext(r.Context()),
		Search:  query.Get("search"),
		Page:    parsePositiveInt(query.Get("page"), 1),
		Limit:   parsePositiveInt(query.Get("limit"), 0),
	}

	result, err := h.svc.ListLinks(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	response := dto.ToLinkListResponse(result.Links, result.Page, result.TotalPages, result.TotalLinks)
	writeJSON(w, http.StatusOK, response)
}

// Update handles PUT /links/{id}.
func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Link ID is required")
		return
	}

	var req dto.UpdateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateLinkInput{
		OwnerID:        auth.OwnerIDFromContext(r.Context()),
		LinkID:         id,
		DestinationURL: req.DestinationURL,
		ShortCode:      req.ShortCode,
		Remarks:        req.Remarks,
		ExpiresAt:      req.Expiration,
	}

	link, err := h.svc.UpdateLink(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("link_updated",
		"link_id", link.ID,
		"short_code", link.ShortCode,
	)

	writeJSON(w, http.StatusOK, dto.ToLinkResponse(link))
}

// Delete handles DELETE /links/{id}.
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Link ID is required")
		return
	}

	if err := h.svc.DeleteLink(r.Context(), auth.OwnerIDFromContext(r.Context()), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("link_deleted", "link_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll handles DELETE /links. Removes every link the authenticated
// owner has, along with their recorded clicks.
func (h *LinkHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerIDFromContext(r.Context())

	deleted, err := h.svc.DeleteAllLinks(r.Context(), ownerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("links_purged", "owner_id", ownerID, "deleted", deleted)

	writeJSON(w, http.StatusOK, dto.DeleteAllResponse{DeletedLinks: deleted})
}

// handleServiceError maps service errors to HTTP responses.
func (h *LinkHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLinkNotFound):
		writeError(w, http.StatusNotFound, "LINK_NOT_FOUND", "Link not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Link belongs to a different account")
	case errors.Is(err, service.ErrCodeTaken):
		writeError(w, http.StatusConflict, "CODE_TAKEN", "Short code already in use")
	case errors.Is(err, service.ErrCodeSpaceExhausted):
		writeError(w, http.StatusServiceUnavailable, "CODE_SPACE_EXHAUSTED", "Could not allocate a short code, try again")
	case errors.Is(err, service.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "INVALID_CODE", "Invalid short code format")
	case errors.Is(err, service.ErrInvalidDestination):
		writeError(w, http.StatusBadRequest, "INVALID_DESTINATION", "Invalid destination URL")
	case errors.Is(err, service.ErrURLTooLong):
		writeError(w, http.StatusBadRequest, "URL_TOO_LONG", "Destination URL exceeds maximum length")
	case errors.Is(err, service.ErrExpiresInPast):
		writeError(w, http.StatusBadRequest, "EXPIRES_IN_PAST", "Expiration must be in the future")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
