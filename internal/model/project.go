package model

import (
	"errors"
	"time"
)

// Project is a persisted portfolio entry owned by a user.
type Project struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Content     *string   `db:"content" json:"content,omitempty"`
	CategoryID  *int64    `db:"category_id" json:"category_id,omitempty"`
	DemoLink    *string   `db:"demo_link" json:"demo_link,omitempty"`
	GithubLink  *string   `db:"github_link" json:"github_link,omitempty"`
	ImagePath   *string   `db:"image_path" json:"image_path,omitempty"`
	VideoPath   *string   `db:"video_path" json:"video_path,omitempty"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	IsFeatured  bool      `db:"is_featured" json:"is_featured"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not in the projects table)
	Category     *Category `json:"category,omitempty"`
	Tags         []Tag     `json:"tags,omitempty"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	Liked        bool      `json:"liked"`
}

// Tag is a free-form label created lazily on first use and never deleted
// automatically.
type Tag struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// CategoryNone is the "no category selected" sentinel accepted by project
// forms; it is distinct from any real category id and clears category_id.
const CategoryNone int64 = 0

// ProjectRequest carries the writable project fields. Tags is the raw
// comma-separated input; ImagePath/VideoPath are set by the handler after
// storing uploads, and stay nil to keep the existing values on update.
type ProjectRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Content     *string `json:"content"`
	CategoryID  int64   `json:"category_id"`
	Tags        string  `json:"tags"`
	DemoLink    *string `json:"demo_link"`
	GithubLink  *string `json:"github_link"`
	IsPublished bool    `json:"is_published"`
	IsFeatured  bool    `json:"is_featured"`
	ImagePath   *string `json:"-"`
	VideoPath   *string `json:"-"`
}

// SearchPageSize is the fixed page size for project search results.
const SearchPageSize = 10

// SearchResult is one page of published projects matching a query.
type SearchResult struct {
	Projects []Project `json:"projects"`
	Query    string    `json:"query"`
	Page     int       `json:"page"`
	Total    int       `json:"total"`
	HasMore  bool      `json:"has_more"`
}

// DashboardStats summarizes an owner's projects for the admin dashboard.
type DashboardStats struct {
	TotalProjects     int `db:"total_projects" json:"total_projects"`
	PublishedProjects int `db:"published_projects" json:"published_projects"`
	TotalLikes        int `db:"total_likes" json:"total_likes"`
	TotalComments     int `db:"total_comments" json:"total_comments"`
}

// Project field limits, matching the submission forms.
const (
	MaxProjectTitleLength       = 200
	MaxProjectDescriptionLength = 1000
	MaxProjectContentLength     = 5000
	MaxProjectTagsLength        = 200
)

var (
	// ErrProjectNotFound is returned when a project cannot be found
	ErrProjectNotFound = errors.New("project not found")

	// ErrTitleRequired is returned when the title is empty
	ErrTitleRequired = errors.New("project title is required")

	// ErrDescriptionRequired is returned when the description is empty
	ErrDescriptionRequired = errors.New("project description is required")

	// ErrFieldTooLong is returned when a form field exceeds its limit
	ErrFieldTooLong = errors.New("field exceeds maximum length")
)
