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

// CategoryHandler serves the public category list and the admin CRUD.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List returns all categories
// GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		httputil.WriteInternalError(w, "Failed to list categories")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, categories)
}

// Create adds a category
// POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), userID, req)
	if err != nil {
		writeCategoryError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, category)
}

// Update renames or recolors a category
// PUT /categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	categoryID, err := pathID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid category id")
		return
	}

	var req model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(r.Context(), userID, categoryID, req)
	if err != nil {
		writeCategoryError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, category)
}

// Delete removes an unreferenced category
// DELETE /categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	categoryID, err := pathID(r, "id")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid category id")
		return
	}

	if err := h.categoryService.Delete(r.Context(), userID, categoryID); err != nil {
		writeCategoryError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Category deleted",
	})
}

func writeCategoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrCategoryNotFound):
		httputil.WriteNotFound(w, "Category not found")
	case errors.Is(err, model.ErrCategoryExists):
		httputil.WriteConflict(w, "Category name already exists")
	case errors.Is(err, model.ErrCategoryInUse):
		httputil.WriteConflict(w, "Category is referenced by projects")
	case errors.Is(err, model.ErrForbidden):
		httputil.WriteForbidden(w, "Admin access required")
	case errors.Is(err, model.ErrCategoryNameRequired),
		errors.Is(err, model.ErrInvalidColor),
		errors.Is(err, model.ErrFieldTooLong):
		httputil.WriteBadRequest(w, err.Error())
	default:
		httputil.WriteInternalError(w, "Failed to save category")
	}
}
