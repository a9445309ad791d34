package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"golang.org/x/crypto/bcrypt"

	"github.com/edgomes/portfolio-backend/internal/config"
)

func Connect(cfg *config.Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hashed TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		bio TEXT,
		profession TEXT,
		location TEXT,
		linkedin_url TEXT,
		github_url TEXT,
		website_url TEXT,
		profile_image TEXT,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		color TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		content TEXT,
		category_id BIGINT REFERENCES categories(id),
		demo_link TEXT,
		github_link TEXT,
		image_path TEXT,
		video_path TEXT,
		is_published BOOLEAN NOT NULL DEFAULT FALSE,
		is_featured BOOLEAN NOT NULL DEFAULT FALSE,
		user_id BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS project_tags (
		project_id BIGINT NOT NULL REFERENCES projects(id),
		tag_id BIGINT NOT NULL REFERENCES tags(id),
		PRIMARY KEY (project_id, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		content TEXT NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id),
		project_id BIGINT NOT NULL REFERENCES projects(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		project_id BIGINT NOT NULL REFERENCES projects(id),
		UNIQUE (user_id, project_id)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		message TEXT NOT NULL,
		project_id BIGINT REFERENCES projects(id) ON DELETE SET NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user_id ON projects(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_project_id ON comments(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_likes_project_id ON likes(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
}

// Migrate applies the idempotent schema DDL.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// defaultCategories are seeded together with the bootstrap admin.
var defaultCategories = []struct {
	Name  string
	Color string
}{
	{"Web Development", "#FF6B35"},
	{"Mobile", "#28A745"},
	{"Desktop", "#007BFF"},
	{"Machine Learning", "#6F42C1"},
	{"DevOps", "#DC3545"},
}

// Seed creates the bootstrap admin and default categories, but only when the
// users table is empty. The admin password goes through the same bcrypt path
// as registration.
func Seed(ctx context.Context, db *sqlx.DB, cfg *config.Config) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hashed, first_name, last_name, is_admin, bio, linkedin_url, github_url)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $8)
	`, cfg.AdminUsername, cfg.AdminEmail, string(hashed),
		"Edgar", "Gomes",
		"Full-stack developer",
		"https://www.linkedin.com/in/edgar-gomes234",
		"https://github.com/"+cfg.GithubUsername)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}

	for _, c := range defaultCategories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (name, color) VALUES ($1, $2)`, c.Name, c.Color); err != nil {
			return fmt.Errorf("insert category %q: %w", c.Name, err)
		}
	}

	return tx.Commit()
}
