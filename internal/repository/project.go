package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edgomes/portfolio-backend/internal/model"
)

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, title, description, content, category_id, demo_link,
	github_link, image_path, video_path, is_published, is_featured, user_id, created_at`

// Create inserts the project and attaches its tags in one transaction.
func (r *projectRepository) Create(ctx context.Context, project *model.Project, tagNames []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO projects (title, description, content, category_id, demo_link,
			github_link, image_path, video_path, is_published, is_featured, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	err = tx.QueryRowxContext(ctx, query,
		project.Title, project.Description, project.Content, project.CategoryID,
		project.DemoLink, project.GithubLink, project.ImagePath, project.VideoPath,
		project.IsPublished, project.IsFeatured, project.UserID,
	).Scan(&project.ID, &project.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}

	if err := attachTags(ctx, tx, project.ID, tagNames); err != nil {
		return err
	}

	return tx.Commit()
}

// Update rewrites the row and replaces the tag set (clear then re-add) in
// one transaction. The owner column is never touched.
func (r *projectRepository) Update(ctx context.Context, project *model.Project, tagNames []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE projects SET
			title = $1, description = $2, content = $3, category_id = $4,
			demo_link = $5, github_link = $6, image_path = $7, video_path = $8,
			is_published = $9, is_featured = $10
		WHERE id = $11
	`, project.Title, project.Description, project.Content, project.CategoryID,
		project.DemoLink, project.GithubLink, project.ImagePath, project.VideoPath,
		project.IsPublished, project.IsFeatured, project.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrProjectNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_tags WHERE project_id = $1`, project.ID); err != nil {
		return fmt.Errorf("clear project tags: %w", err)
	}
	if err := attachTags(ctx, tx, project.ID, tagNames); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete cascades the project's comments, likes and tag relations before
// removing the row. Tag rows survive; media files are the caller's problem.
func (r *projectRepository) Delete(ctx context.Context, projectID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM comments WHERE project_id = $1`,
		`DELETE FROM likes WHERE project_id = $1`,
		`DELETE FROM project_tags WHERE project_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, projectID); err != nil {
			return fmt.Errorf("cascade delete: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrProjectNotFound
	}

	return tx.Commit()
}

func (r *projectRepository) GetByID(ctx context.Context, projectID int64) (*model.Project, error) {
	var project model.Project
	err := r.db.GetContext(ctx, &project, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, projectID)
	if err == sql.ErrNoRows {
		return nil, model.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	projects := []model.Project{project}
	if err := r.loadAssociations(ctx, projects); err != nil {
		return nil, err
	}
	return &projects[0], nil
}

func (r *projectRepository) ListPublished(ctx context.Context, categoryID *int64) ([]model.Project, error) {
	var projects []model.Project
	var err error
	if categoryID != nil {
		err = r.db.SelectContext(ctx, &projects, `
			SELECT `+projectColumns+` FROM projects
			WHERE is_published AND category_id = $1
			ORDER BY created_at DESC
		`, *categoryID)
	} else {
		err = r.db.SelectContext(ctx, &projects, `
			SELECT `+projectColumns+` FROM projects
			WHERE is_published
			ORDER BY created_at DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("list published projects: %w", err)
	}

	if err := r.loadAssociations(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) ListByUser(ctx context.Context, userID int64, publishedOnly bool) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1`
	if publishedOnly {
		query += ` AND is_published`
	}
	query += ` ORDER BY created_at DESC`

	var projects []model.Project
	if err := r.db.SelectContext(ctx, &projects, query, userID); err != nil {
		return nil, fmt.Errorf("list user projects: %w", err)
	}

	if err := r.loadAssociations(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Search matches published projects on title, description or content,
// case-insensitively, newest first.
func (r *projectRepository) Search(ctx context.Context, query string, limit, offset int) ([]model.Project, int, error) {
	pattern := "%" + query + "%"

	var total int
	err := r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM projects
		WHERE is_published
		  AND (title ILIKE $1 OR description ILIKE $1 OR content ILIKE $1)
	`, pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}

	var projects []model.Project
	err = r.db.SelectContext(ctx, &projects, `
		SELECT `+projectColumns+` FROM projects
		WHERE is_published
		  AND (title ILIKE $1 OR description ILIKE $1 OR content ILIKE $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search projects: %w", err)
	}

	if err := r.loadAssociations(ctx, projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// OwnerStats aggregates the dashboard counters for one owner.
func (r *projectRepository) OwnerStats(ctx context.Context, userID int64) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*) AS total_projects,
			COUNT(*) FILTER (WHERE is_published) AS published_projects,
			(SELECT COUNT(*) FROM likes l JOIN projects p ON p.id = l.project_id WHERE p.user_id = $1) AS total_likes,
			(SELECT COUNT(*) FROM comments c JOIN projects p ON p.id = c.project_id WHERE p.user_id = $1) AS total_comments
		FROM projects
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("owner stats: %w", err)
	}
	return &stats, nil
}

// attachTags resolves each name and links it to the project. Duplicate
// names in the input collapse to a single relation.
func attachTags(ctx context.Context, tx *sqlx.Tx, projectID int64, tagNames []string) error {
	for _, name := range tagNames {
		tagID, err := resolveOrCreateTag(ctx, tx, name)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO project_tags (project_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, projectID, tagID)
		if err != nil {
			return fmt.Errorf("attach tag %q: %w", name, err)
		}
	}
	return nil
}

// loadAssociations batch-fetches tags, categories and engagement counts for
// a slice of projects.
func (r *projectRepository) loadAssociations(ctx context.Context, projects []model.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]int64, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
	}

	type tagRow struct {
		ProjectID int64  `db:"project_id"`
		ID        int64  `db:"id"`
		Name      string `db:"name"`
	}
	var tagRows []tagRow
	err := r.db.SelectContext(ctx, &tagRows, `
		SELECT pt.project_id, t.id, t.name
		FROM project_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.project_id = ANY($1)
		ORDER BY t.name
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load project tags: %w", err)
	}
	tagsByProject := make(map[int64][]model.Tag)
	for _, row := range tagRows {
		tagsByProject[row.ProjectID] = append(tagsByProject[row.ProjectID], model.Tag{ID: row.ID, Name: row.Name})
	}

	type countRow struct {
		ProjectID int64 `db:"project_id"`
		Likes     int   `db:"likes"`
		Comments  int   `db:"comments"`
	}
	var countRows []countRow
	err = r.db.SelectContext(ctx, &countRows, `
		SELECT p.id AS project_id,
		       (SELECT COUNT(*) FROM likes WHERE project_id = p.id) AS likes,
		       (SELECT COUNT(*) FROM comments WHERE project_id = p.id) AS comments
		FROM projects p
		WHERE p.id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load engagement counts: %w", err)
	}
	countsByProject := make(map[int64]countRow, len(countRows))
	for _, row := range countRows {
		countsByProject[row.ProjectID] = row
	}

	var categories []model.Category
	err = r.db.SelectContext(ctx, &categories, `
		SELECT DISTINCT c.id, c.name, c.color
		FROM categories c
		JOIN projects p ON p.category_id = c.id
		WHERE p.id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	categoriesByID := make(map[int64]model.Category, len(categories))
	for _, c := range categories {
		categoriesByID[c.ID] = c
	}

	for i := range projects {
		p := &projects[i]
		p.Tags = tagsByProject[p.ID]
		if counts, ok := countsByProject[p.ID]; ok {
			p.LikeCount = counts.Likes
			p.CommentCount = counts.Comments
		}
		if p.CategoryID != nil {
			if c, ok := categoriesByID[*p.CategoryID]; ok {
				p.Category = &c
			}
		}
	}
	return nil
}
