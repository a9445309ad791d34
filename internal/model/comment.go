package model

import (
	"errors"
	"time"
)

// Comment is an append-only remark on a project.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	UserID    int64     `db:"user_id" json:"-"`
	ProjectID int64     `db:"project_id" json:"project_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Author *UserSummary `json:"author,omitempty"` // Joined field
}

// CreateCommentRequest is the request body for posting a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Like is one user's like of one project. The (user_id, project_id) pair is
// unique; a second like removes the row instead of duplicating it.
type Like struct {
	ID        int64 `db:"id" json:"id"`
	UserID    int64 `db:"user_id" json:"user_id"`
	ProjectID int64 `db:"project_id" json:"project_id"`
}

// LikeResult is the toggle-like response: the state after the toggle and
// the project's updated like count.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// Comment content bounds, inclusive.
const (
	MinCommentLength = 1
	MaxCommentLength = 1000
)

var (
	// ErrCommentLength is returned when content is empty or over the limit
	ErrCommentLength = errors.New("comment must be between 1 and 1000 characters")

	// ErrAlreadyLiked is returned when a concurrent request inserted the
	// same like first
	ErrAlreadyLiked = errors.New("project already liked")
)
