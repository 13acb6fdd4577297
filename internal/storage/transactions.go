package storage

import (
	"context"
	"database/sql"
	"fmt"

	"pocketledger/internal/core"

	"github.com/shopspring/decimal"
)

// CreateTransactionParams carries the caller-supplied fields of a new
// transaction. Amount sign, category existence and type/category agreement
// are accepted as given; see the storage tests for the named validation gaps.
type CreateTransactionParams struct {
	Type        core.TransactionType
	CategoryID  int64
	Amount      decimal.Decimal
	Description *string
	Date        core.Date
}

// CreateTransaction inserts one transaction owned by userID and returns its
// id. created_at and updated_at are stamped by the store.
func (s *Store) CreateTransaction(ctx context.Context, userID string, p CreateTransactionParams) (int64, error) {
	const insert = `
		INSERT INTO transactions (user_id, category_id, amount, description, date, type)
		VALUES (?, ?, ?, ?, ?, ?)`

	var description sql.NullString
	if p.Description != nil {
		description = sql.NullString{String: *p.Description, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, insert,
		userID, p.CategoryID, p.Amount, description, p.Date, p.Type)
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create transaction: last insert id: %w", err)
	}

	return id, nil
}

// ListTransactions returns every transaction owned by userID joined with its
// category, most recent first: date descending, ties broken by created_at
// descending. No transactions is an empty slice, not an error.
func (s *Store) ListTransactions(ctx context.Context, userID string) ([]core.TransactionView, error) {
	const query = `
		SELECT
			t.id, t.user_id, t.category_id, t.amount, t.description,
			t.date, t.type, t.created_at, t.updated_at,
			c.id, c.name, c.icon, c.color
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = ?
		ORDER BY t.date DESC, t.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	views := []core.TransactionView{}
	for rows.Next() {
		var (
			v           core.TransactionView
			description sql.NullString
			createdAt   timeText
			updatedAt   timeText
		)
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.CategoryID, &v.Amount, &description,
			&v.Date, &v.Type, &createdAt, &updatedAt,
			&v.Category.ID, &v.Category.Name, &v.Category.Icon, &v.Category.Color,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if description.Valid {
			v.Description = &description.String
		}
		v.CreatedAt = createdAt.Time
		v.UpdatedAt = updatedAt.Time
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return views, nil
}

// DeleteTransaction deletes the transaction matching both id and owner.
// A row belonging to another owner, or no row at all, deletes nothing and is
// still success: callers learn nothing about other owners' ids.
func (s *Store) DeleteTransaction(ctx context.Context, userID string, id int64) error {
	const del = `DELETE FROM transactions WHERE id = ? AND user_id = ?`

	if _, err := s.db.ExecContext(ctx, del, id, userID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	return nil
}

// TransactionStats sums the owner's full ledger into income and expense
// totals plus the resulting balance.
func (s *Store) TransactionStats(ctx context.Context, userID string) (core.Stats, error) {
	const query = `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ?
		GROUP BY type`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return core.Stats{}, fmt.Errorf("transaction stats: %w", err)
	}
	defer rows.Close()

	var stats core.Stats
	for rows.Next() {
		var (
			typ   core.TransactionType
			total decimal.Decimal
		)
		if err := rows.Scan(&typ, &total); err != nil {
			return core.Stats{}, fmt.Errorf("scan stats row: %w", err)
		}
		switch typ {
		case core.TypeIncome:
			stats.TotalIncome = total
		case core.TypeExpense:
			stats.TotalExpenses = total
		}
	}
	if err := rows.Err(); err != nil {
		return core.Stats{}, fmt.Errorf("iterate stats rows: %w", err)
	}

	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpenses)
	return stats, nil
}
