package service

import (
	"context"
	"fmt"
	"log/slog"

	"pocketledger/internal/core"
	"pocketledger/internal/events"
	"pocketledger/internal/storage"
)

// EventPublisher pushes ledger events to the broker. A nil publisher is
// valid: the ledger keeps working, it just stops announcing changes.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, e *events.LedgerEvent) error
}

// TransactionService orchestrates transaction operations across the store
// and the event stream.
type TransactionService struct {
	store     *storage.Store
	publisher EventPublisher
}

func NewTransactionService(store *storage.Store, publisher EventPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// List returns the owner's transactions joined with their categories,
// most recent first.
func (s *TransactionService) List(ctx context.Context, ownerID string) ([]core.TransactionView, error) {
	views, err := s.store.ListTransactions(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return views, nil
}

// Create inserts the transaction and announces it. The insert is the source
// of truth; a publish failure is logged and never fails the request.
func (s *TransactionService) Create(ctx context.Context, ownerID string, p storage.CreateTransactionParams) (int64, error) {
	id, err := s.store.CreateTransaction(ctx, ownerID, p)
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}

	s.publish(ctx, events.NewTransactionEvent(events.ActionTransactionCreated, ownerID, id))

	return id, nil
}

// Delete removes the owner's transaction. Ids that don't exist or belong to
// someone else delete nothing and still succeed; no event is suppressed
// either way, since the consumer treats the stream as advisory.
func (s *TransactionService) Delete(ctx context.Context, ownerID string, id int64) error {
	if err := s.store.DeleteTransaction(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publish(ctx, events.NewTransactionEvent(events.ActionTransactionDeleted, ownerID, id))

	return nil
}

// Stats aggregates the owner's ledger totals.
func (s *TransactionService) Stats(ctx context.Context, ownerID string) (core.Stats, error) {
	stats, err := s.store.TransactionStats(ctx, ownerID)
	if err != nil {
		return core.Stats{}, fmt.Errorf("transaction stats: %w", err)
	}
	return stats, nil
}

func (s *TransactionService) publish(ctx context.Context, e *events.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"error", err,
			"action", e.Action,
			"user_id", e.UserID,
			"transaction_id", e.TransactionID)
	}
}
