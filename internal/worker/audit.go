package worker

import (
	"context"
	"fmt"
	"log/slog"

	"pocketledger/internal/events"
	"pocketledger/internal/storage"
)

// AuditWorker consumes ledger events and records them durably in the audit
// log. The stream is advisory: an entry says an action was announced, the
// ledger tables stay the source of truth.
type AuditWorker struct {
	store *storage.Store
}

func NewAuditWorker(store *storage.Store) *AuditWorker {
	return &AuditWorker{store: store}
}

// HandleEvent appends one audit entry for the event. Returning an error
// makes the consumer requeue the delivery.
func (w *AuditWorker) HandleEvent(ctx context.Context, e *events.LedgerEvent) error {
	payload, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	entry := storage.AuditEntry{
		Action:   e.Action,
		UserID:   e.UserID,
		EntityID: e.TransactionID,
		Payload:  payload,
	}

	if err := w.store.AppendAudit(ctx, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	slog.InfoContext(ctx, "Recorded ledger event",
		"action", e.Action,
		"user_id", e.UserID,
		"transaction_id", e.TransactionID)

	return nil
}
