package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edgomes/portfolio-backend/internal/httputil"
	"github.com/edgomes/portfolio-backend/internal/model"
	"github.com/edgomes/portfolio-backend/internal/service"
	"github.com/edgomes/portfolio-backend/internal/transport/http/middleware"
)

// EngagementHandler serves comments and the like toggle.
type EngagementHandler struct {
	engagementService *service.EngagementService
}

func NewEngagementHandler(engagementService *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService}
}

// AddComment posts a comment on a project
// POST /projects/{id}/comments
func (h *EngagementHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	projectID, err := pathID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid project id")
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.engagementService.AddComment(r.Context(), projectID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrProjectNotFound):
			httputil.WriteNotFound(w, "Project not found")
		case errors.Is(err, model.ErrCommentLength):
			httputil.WriteBadRequest(w, err.Error())
		default:
			httputil.WriteInternalError(w, "Failed to add comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// ListComments returns a project's comments, newest first
// GET /projects/{id}/comments
func (h *EngagementHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid project id")
		return
	}

	comments, err := h.engagementService.ListComments(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, model.ErrProjectNotFound) {
			httputil.WriteNotFound(w, "Project not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to list comments")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// ToggleLike flips the caller's like on a project
// POST /projects/{id}/like
func (h *EngagementHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	projectID, err := pathID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid project id")
		return
	}

	result, err := h.engagementService.ToggleLike(r.Context(), projectID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrProjectNotFound):
			httputil.WriteNotFound(w, "Project not found")
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteConflict(w, "Project already liked")
		default:
			httputil.WriteInternalError(w, "Failed to toggle like")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
