package events

import (
	"encoding/json"
	"time"
)

// Ledger event actions.
const (
	ActionTransactionCreated = "transaction.created"
	ActionTransactionDeleted = "transaction.deleted"
	ActionUserBound          = "user.bound"
)

// LedgerEvent is a lightweight notification that something changed in a
// user's ledger. It carries identifiers, not row contents; consumers fetch
// whatever they need from the store.
type LedgerEvent struct {
	Action        string    `json:"action"`
	UserID        string    `json:"user_id"`
	TransactionID int64     `json:"transaction_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewTransactionEvent creates an event about a single transaction.
func NewTransactionEvent(action, userID string, transactionID int64) *LedgerEvent {
	return &LedgerEvent{
		Action:        action,
		UserID:        userID,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

// NewUserBoundEvent creates an event recording an identity binding.
func NewUserBoundEvent(userID string) *LedgerEvent {
	return &LedgerEvent{
		Action:    ActionUserBound,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON creates an event from JSON bytes
func FromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
