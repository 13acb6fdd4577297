package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pocketledger/internal/core"
)

// UpsertUser creates or fully replaces the user row keyed by its local id.
// Every bound field is overwritten with the newly supplied value, including
// nil avatar and email, so a field removed upstream is cleared here too.
//
// This is deliberately ON CONFLICT DO UPDATE rather than INSERT OR REPLACE:
// with foreign_keys on, OR REPLACE deletes the old row first and the cascade
// would silently wipe the user's transactions on every sign-in.
func (s *Store) UpsertUser(ctx context.Context, u core.User) error {
	const upsert = `
		INSERT INTO users (id, discord_id, username, avatar, email)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			discord_id = excluded.discord_id,
			username = excluded.username,
			avatar = excluded.avatar,
			email = excluded.email,
			updated_at = CURRENT_TIMESTAMP`

	_, err := s.db.ExecContext(ctx, upsert,
		u.ID, u.DiscordID, u.Username, nullable(u.Avatar), nullable(u.Email))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// GetUser fetches one user by local id. Returns ErrNotFound when absent.
func (s *Store) GetUser(ctx context.Context, id string) (*core.User, error) {
	const query = `
		SELECT id, discord_id, username, avatar, email, created_at, updated_at
		FROM users
		WHERE id = ?`

	var (
		u         core.User
		avatar    sql.NullString
		email     sql.NullString
		createdAt timeText
		updatedAt timeText
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.DiscordID, &u.Username, &avatar, &email, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	if email.Valid {
		u.Email = &email.String
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time

	return &u, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
