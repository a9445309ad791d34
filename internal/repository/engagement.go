package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edgomes/portfolio-backend/internal/model"
)

type engagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// AddComment inserts the comment and the owner's notification atomically.
// notif is nil when the author commented on their own project.
func (r *engagementRepository) AddComment(ctx context.Context, comment *model.Comment, notif *model.Notification) (*model.Comment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO comments (content, user_id, project_id)
		VALUES ($1, $2, $3)
		RETURNING id, content, user_id, project_id, created_at
	`
	var created model.Comment
	err = tx.GetContext(ctx, &created, query, comment.Content, comment.UserID, comment.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	if notif != nil {
		if err := insertNotification(ctx, tx, notif); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &created, nil
}

func (r *engagementRepository) ListComments(ctx context.Context, projectID int64) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.content, c.user_id, c.project_id, c.created_at,
		       u.id AS "author.id", u.username AS "author.username",
		       u.first_name AS "author.first_name", u.last_name AS "author.last_name",
		       u.profile_image AS "author.profile_image"
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.project_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`

	type commentRow struct {
		ID             int64     `db:"id"`
		Content        string    `db:"content"`
		UserID         int64     `db:"user_id"`
		ProjectID      int64     `db:"project_id"`
		CreatedAt      time.Time `db:"created_at"`
		AuthorID       int64     `db:"author.id"`
		AuthorUsername string    `db:"author.username"`
		AuthorFirst    string    `db:"author.first_name"`
		AuthorLast     string    `db:"author.last_name"`
		AuthorImage    *string   `db:"author.profile_image"`
	}
	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, projectID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		comments[i] = model.Comment{
			ID:        row.ID,
			Content:   row.Content,
			UserID:    row.UserID,
			ProjectID: row.ProjectID,
			CreatedAt: row.CreatedAt,
			Author: &model.UserSummary{
				ID:           row.AuthorID,
				Username:     row.AuthorUsername,
				FirstName:    row.AuthorFirst,
				LastName:     row.AuthorLast,
				ProfileImage: row.AuthorImage,
			},
		}
	}
	return comments, nil
}

// ToggleLike deletes the like row if present, inserts it otherwise, and
// writes the notification only on the insert path. Everything, including
// the recount, runs in one transaction.
func (r *engagementRepository) ToggleLike(ctx context.Context, projectID, userID int64, notif *model.Notification) (*model.LikeResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND project_id = $2`, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("delete like: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}

	liked := deleted == 0
	if liked {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO likes (user_id, project_id) VALUES ($1, $2)`, userID, projectID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return nil, model.ErrAlreadyLiked
			}
			return nil, fmt.Errorf("insert like: %w", err)
		}
		if notif != nil {
			if err := insertNotification(ctx, tx, notif); err != nil {
				return nil, err
			}
		}
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE project_id = $1`, projectID); err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &model.LikeResult{Liked: liked, LikeCount: count}, nil
}

func (r *engagementRepository) IsLiked(ctx context.Context, projectID, userID int64) (bool, error) {
	var liked bool
	err := r.db.GetContext(ctx, &liked,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND project_id = $2)`, userID, projectID)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return liked, nil
}

func insertNotification(ctx context.Context, tx *sqlx.Tx, notif *model.Notification) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO notifications (user_id, message, project_id)
		VALUES ($1, $2, $3)
	`, notif.UserID, notif.Message, notif.ProjectID)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}
