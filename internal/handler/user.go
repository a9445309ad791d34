package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edgomes/portfolio-backend/internal/httputil"
	"github.com/edgomes/portfolio-backend/internal/model"
	"github.com/edgomes/portfolio-backend/internal/service"
	"github.com/edgomes/portfolio-backend/internal/transport/http/middleware"
)

// UserHandler serves public profiles and profile edits.
type UserHandler struct {
	userService    *service.UserService
	projectService *service.ProjectService
	mediaService   *service.MediaService
	maxFormSize    int64
}

func NewUserHandler(userService *service.UserService, projectService *service.ProjectService, mediaService *service.MediaService, maxUploadSize int64) *UserHandler {
	return &UserHandler{
		userService:    userService,
		projectService: projectService,
		mediaService:   mediaService,
		maxFormSize:    maxUploadSize + 1024*1024, // form overhead
	}
}

// GetProfile returns a public profile with the user's visible projects
// GET /users/{username}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userService.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	projects, err := h.projectService.ListByUser(r.Context(), user.ID, viewerID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list projects")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":     user.PublicProfile(),
		"projects": projects,
	})
}

// UpdateProfile handles multipart profile edits with an optional image
// PUT /me/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFormSize)
	if err := r.ParseMultipartForm(h.maxFormSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
			return
		}
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WritePayloadTooLarge(w, "Upload exceeds the size limit")
			return
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return
	}

	req := model.UpdateProfileRequest{
		FirstName:   strings.TrimSpace(r.FormValue("first_name")),
		LastName:    strings.TrimSpace(r.FormValue("last_name")),
		Bio:         optionalFormValue(r, "bio"),
		Profession:  optionalFormValue(r, "profession"),
		Location:    optionalFormValue(r, "location"),
		LinkedinURL: optionalFormValue(r, "linkedin_url"),
		GithubURL:   optionalFormValue(r, "github_url"),
		WebsiteURL:  optionalFormValue(r, "website_url"),
	}

	var previousImage string
	file, header, err := r.FormFile("profile_image")
	if err == nil {
		defer file.Close()
		key, storeErr := h.mediaService.StoreImage(r.Context(), file, header, model.ProfileMediaFolder)
		if storeErr != nil {
			writeMediaError(w, storeErr)
			return
		}
		req.ProfileImage = &key

		if current, err := h.userService.GetByID(r.Context(), userID); err == nil && current.ProfileImage != nil {
			previousImage = *current.ProfileImage
		}
	} else if err != http.ErrMissingFile {
		httputil.WriteBadRequest(w, "Invalid profile image upload")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		// The upload is orphaned if the update never lands.
		if req.ProfileImage != nil {
			h.mediaService.Remove(r.Context(), *req.ProfileImage)
		}
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	if previousImage != "" {
		h.mediaService.Remove(r.Context(), previousImage)
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// optionalFormValue maps an absent or blank field to nil so the column is
// cleared rather than stored as an empty string.
func optionalFormValue(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

// writeMediaError maps upload failures to the response envelope.
func writeMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrFileTooLarge):
		httputil.WritePayloadTooLarge(w, "Upload exceeds the size limit")
	case errors.Is(err, model.ErrInvalidMediaType):
		httputil.WriteBadRequest(w, "Unsupported media type")
	default:
		httputil.WriteInternalError(w, "Failed to store upload")
	}
}
