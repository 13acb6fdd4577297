package storage

import (
	"context"
	"fmt"

	"pocketledger/internal/core"
)

// ListTemplateCategories returns the canonical set of system templates: one
// representative row per logical template, ordered by type then name.
//
// The seed step is idempotent, but it cannot undo duplicates that already
// accumulated under historical races or schema migrations, so the GROUP BY
// collapses physical duplicates to the row with the smallest id.
func (s *Store) ListTemplateCategories(ctx context.Context) ([]core.Category, error) {
	const query = `
		SELECT
			MIN(id) AS id,
			name,
			icon,
			color,
			type,
			is_template
		FROM categories
		WHERE is_template = TRUE
		GROUP BY name, type, icon, color, is_template
		ORDER BY type, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list template categories: %w", err)
	}
	defer rows.Close()

	categories := []core.Category{}
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.Type, &c.IsTemplate); err != nil {
			return nil, fmt.Errorf("scan template category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template categories: %w", err)
	}

	return categories, nil
}
