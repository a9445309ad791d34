package handler

import (
	"net/http"

	"github.com/edgomes/portfolio-backend/internal/httputil"
	"github.com/edgomes/portfolio-backend/internal/service"
	"github.com/edgomes/portfolio-backend/internal/transport/http/middleware"
)

// NotificationHandler serves the pull-based notification feed.
type NotificationHandler struct {
	engagementService *service.EngagementService
}

func NewNotificationHandler(engagementService *service.EngagementService) *NotificationHandler {
	return &NotificationHandler{engagementService: engagementService}
}

// List returns the caller's recent notifications with the unread count
// GET /notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	list, err := h.engagementService.Notifications(r.Context(), userID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, list)
}

// MarkRead clears the caller's unread notifications
// POST /notifications/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.engagementService.MarkNotificationsRead(r.Context(), userID); err != nil {
		httputil.WriteInternalError(w, "Failed to mark notifications read")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Notifications marked as read",
	})
}
