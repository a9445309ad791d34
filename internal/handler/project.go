package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edgomes/portfolio-backend/internal/httputil"
	"github.com/edgomes/portfolio-backend/internal/model"
	"github.com/edgomes/portfolio-backend/internal/service"
	"github.com/edgomes/portfolio-backend/internal/transport/http/middleware"
)

// ProjectHandler serves the public catalog and the admin project CRUD.
type ProjectHandler struct {
	projectService *service.ProjectService
	mediaService   *service.MediaService
	maxFormSize    int64
}

func NewProjectHandler(projectService *service.ProjectService, mediaService *service.MediaService, maxUploadSize int64) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		mediaService:   mediaService,
		maxFormSize:    2*maxUploadSize + 1024*1024, // image + video + form overhead
	}
}

// List returns published projects, optionally filtered by category
// GET /projects?category=
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	var categoryID *int64
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			httputil.WriteBadRequest(w, "Invalid category filter")
			return
		}
		categoryID = &id
	}

	projects, err := h.projectService.ListPublished(r.Context(), categoryID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list projects")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, projects)
}

// Get returns a single project
// GET /projects/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid project id")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	project, err := h.projectService.GetByID(r.Context(), projectID, viewerID)
	if err != nil {
		if errors.Is(err, model.ErrProjectNotFound) {
			httputil.WriteNotFound(w, "Project not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get project")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, project)
}

// Search returns one page of published projects matching q
// GET /projects/search?q=&page=
func (h *ProjectHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httputil.WriteBadRequest(w, "Search query is required")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	result, err := h.projectService.Search(r.Context(), query, page)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to search projects")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

// Create handles multipart project creation with optional media
// POST /projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	req, uploaded, ok := h.parseProjectForm(w, r)
	if !ok {
		return
	}

	project, err := h.projectService.Create(r.Context(), userID, *req)
	if err != nil {
		h.mediaService.Remove(r.Context(), uploaded...)
		writeProjectError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, project)
}

// Update handles multipart project edits
// PUT /projects/{id}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	req, uploaded, ok := h.parseProjectForm(w, r)
	if !ok {
		return
	}

	project, displaced, err := h.projectService.Update(r.Context(), projectID, userID, *req)
	if err != nil {
		h.mediaService.Remove(r.Context(), uploaded...)
		writeProjectError(w, err)
		return
	}

	h.mediaService.Remove(r.Context(), displaced...)
	httputil.WriteJSON(w, http.StatusOK, project)
}

// Delete removes a project and its media
// DELETE /projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	media, err := h.projectService.Delete(r.Context(), projectID, userID)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	h.mediaService.Remove(r.Context(), media...)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Project deleted",
	})
}

// Stats returns the admin dashboard counters
// GET /admin/stats
func (h *ProjectHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	stats, err := h.projectService.Stats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrForbidden) {
			httputil.WriteForbidden(w, "Admin access required")
			return
		}
		httputil.WriteInternalError(w, "Failed to load stats")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

// parseProjectForm reads the multipart fields and stores any uploads. On
// failure it writes the error response and reports false; uploaded keys
// are returned so the caller can clean up if the service rejects the
// request.
func (h *ProjectHandler) parseProjectForm(w http.ResponseWriter, r *http.Request) (*model.ProjectRequest, []string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFormSize)
	if err := r.ParseMultipartForm(h.maxFormSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.WriteBadRequest(w, "Content-Type must be multipart/form-data")
			return nil, nil, false
		}
		if strings.Contains(err.Error(), "request body too large") {
			httputil.WritePayloadTooLarge(w, "Upload exceeds the size limit")
			return nil, nil, false
		}
		httputil.WriteBadRequest(w, "Invalid form data")
		return nil, nil, false
	}

	categoryID := model.CategoryNone
	if raw := r.FormValue("category_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			httputil.WriteBadRequest(w, "Invalid category id")
			return nil, nil, false
		}
		categoryID = parsed
	}

	req := &model.ProjectRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Content:     optionalFormValue(r, "content"),
		CategoryID:  categoryID,
		Tags:        r.FormValue("tags"),
		DemoLink:    optionalFormValue(r, "demo_link"),
		GithubLink:  optionalFormValue(r, "github_link"),
		IsPublished: formBool(r, "is_published"),
		IsFeatured:  formBool(r, "is_featured"),
	}

	var uploaded []string

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		key, storeErr := h.mediaService.StoreImage(r.Context(), file, header, model.ProjectMediaFolder)
		if storeErr != nil {
			writeMediaError(w, storeErr)
			return nil, nil, false
		}
		req.ImagePath = &key
		uploaded = append(uploaded, key)
	} else if err != http.ErrMissingFile {
		httputil.WriteBadRequest(w, "Invalid image upload")
		return nil, nil, false
	}

	if file, header, err := r.FormFile("video"); err == nil {
		defer file.Close()
		key, storeErr := h.mediaService.StoreVideo(r.Context(), file, header, model.ProjectMediaFolder)
		if storeErr != nil {
			h.mediaService.Remove(r.Context(), uploaded...)
			writeMediaError(w, storeErr)
			return nil, nil, false
		}
		req.VideoPath = &key
		uploaded = append(uploaded, key)
	} else if err != http.ErrMissingFile {
		h.mediaService.Remove(r.Context(), uploaded...)
		httputil.WriteBadRequest(w, "Invalid video upload")
		return nil, nil, false
	}

	return req, uploaded, true
}

func writeProjectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrProjectNotFound):
		httputil.WriteNotFound(w, "Project not found")
	case errors.Is(err, model.ErrCategoryNotFound):
		httputil.WriteBadRequest(w, "Category does not exist")
	case errors.Is(err, model.ErrForbidden):
		httputil.WriteForbidden(w, "Admin access and ownership required")
	case errors.Is(err, model.ErrTitleRequired),
		errors.Is(err, model.ErrDescriptionRequired),
		errors.Is(err, model.ErrFieldTooLong):
		httputil.WriteBadRequest(w, err.Error())
	default:
		httputil.WriteInternalError(w, "Failed to save project")
	}
}

func formBool(r *http.Request, name string) bool {
	switch strings.ToLower(r.FormValue(name)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
