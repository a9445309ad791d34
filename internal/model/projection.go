package model

import (
	"errors"
	"time"
)

// RepoProjection is a transient, display-only reshaping of a GitHub
// repository into the project structure. It is never persisted: its ID is
// the 1-based position in the pinned-repo list, it lives in its own route
// namespace, and its engagement fields are frozen at zero/false.
type RepoProjection struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     *string    `json:"content,omitempty"` // README excerpt
	GithubLink  string     `json:"github_link"`
	DemoLink    *string    `json:"demo_link,omitempty"`
	IsPublished bool       `json:"is_published"`
	IsFeatured  bool       `json:"is_featured"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`

	Stars     int            `json:"stars"`
	Forks     int            `json:"forks"`
	Language  string         `json:"language"`
	Languages map[string]int `json:"languages,omitempty"` // bytes per language
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`

	LikeCount    int  `json:"like_count"`
	CommentCount int  `json:"comment_count"`
	Liked        bool `json:"liked"`
}

// ErrProjectionNotFound is returned for an id outside the pinned list.
var ErrProjectionNotFound = errors.New("repository projection not found")
