package handler

import (
	"errors"
	"net/http"

	"github.com/edgomes/portfolio-backend/internal/github"
	"github.com/edgomes/portfolio-backend/internal/httputil"
	"github.com/edgomes/portfolio-backend/internal/model"
)

// ShowcaseHandler serves the read-only GitHub repository projections.
type ShowcaseHandler struct {
	mirror *github.Mirror
}

func NewShowcaseHandler(mirror *github.Mirror) *ShowcaseHandler {
	return &ShowcaseHandler{mirror: mirror}
}

// List returns the pinned-repository projections. The mirror degrades to a
// static fallback instead of failing, so this always answers 200.
// GET /showcase
func (h *ShowcaseHandler) List(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.mirror.Featured(r.Context()))
}

// Get returns one projection by its positional id
// GET /showcase/{id}
func (h *ShowcaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid showcase id")
		return
	}

	projection, err := h.mirror.ProjectionByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrProjectionNotFound) {
			httputil.WriteNotFound(w, "Showcase entry not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to load showcase entry")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, projection)
}
