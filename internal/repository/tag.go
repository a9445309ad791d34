package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// resolveOrCreateTag returns the id of the tag with the exact
// (case-sensitive) name, creating it inside the caller's transaction when
// absent. ON CONFLICT DO NOTHING plus the reselect makes it idempotent when
// the same name is resolved twice within one project save, and safe against
// a concurrent save creating the same tag.
func resolveOrCreateTag(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	var id int64
	err := tx.GetContext(ctx, &id, `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`, name)
	if err == nil {
		return id, nil
	}

	// Conflict: the row already exists, look it up.
	err = tx.GetContext(ctx, &id, `SELECT id FROM tags WHERE name = $1`, name)
	if err != nil {
		return 0, fmt.Errorf("resolve tag %q: %w", name, err)
	}
	return id, nil
}
