package model

import (
	"errors"
	"regexp"
)

// Category is admin-managed reference data used to group projects.
type Category struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"` // "#RRGGBB"
}

// CategoryRequest is the request body for creating or updating a category.
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// colorPattern matches a strict 6-digit hex color with leading "#".
var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidColor reports whether s is a "#RRGGBB" hex color.
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

var (
	// ErrCategoryNotFound is returned when a category cannot be found
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryExists is returned on a duplicate category name
	ErrCategoryExists = errors.New("category name already exists")

	// ErrInvalidColor is returned when the color is not "#RRGGBB"
	ErrInvalidColor = errors.New("color must be a hex value like #1A2B3C")

	// ErrCategoryInUse blocks deletion while projects still reference the category
	ErrCategoryInUse = errors.New("category has projects and cannot be deleted")

	// ErrCategoryNameRequired is returned when the name is empty
	ErrCategoryNameRequired = errors.New("category name is required")
)
