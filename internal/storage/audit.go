package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AuditEntry is one durable record of a ledger event, written by the worker
// that consumes the event stream.
type AuditEntry struct {
	ID        int64
	Action    string
	UserID    string
	EntityID  int64
	Payload   []byte
	CreatedAt time.Time
}

// AppendAudit appends one entry to the audit log.
func (s *Store) AppendAudit(ctx context.Context, e AuditEntry) error {
	const insert = `
		INSERT INTO audit_log (action, user_id, entity_id, payload)
		VALUES (?, ?, ?, ?)`

	var payload sql.NullString
	if len(e.Payload) > 0 {
		payload = sql.NullString{String: string(e.Payload), Valid: true}
	}

	if _, err := s.db.ExecContext(ctx, insert, e.Action, e.UserID, e.EntityID, payload); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	return nil
}

// ListAudit returns the most recent audit entries, newest first.
func (s *Store) ListAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	const query = `
		SELECT id, action, COALESCE(user_id, ''), COALESCE(entity_id, 0), COALESCE(payload, ''), created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []AuditEntry{}
	for rows.Next() {
		var (
			e         AuditEntry
			payload   string
			createdAt timeText
		)
		if err := rows.Scan(&e.ID, &e.Action, &e.UserID, &e.EntityID, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if payload != "" {
			e.Payload = []byte(payload)
		}
		e.CreatedAt = createdAt.Time
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return entries, nil
}
