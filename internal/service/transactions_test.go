package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pocketledger/internal/auth"
	"pocketledger/internal/core"
	"pocketledger/internal/events"
	"pocketledger/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	published []*events.LedgerEvent
	err       error
}

func (p *recordingPublisher) PublishLedgerEvent(_ context.Context, e *events.LedgerEvent) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, e)
	return nil
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	s, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func bindTestUser(t *testing.T, store *storage.Store, id string) {
	t.Helper()
	require.NoError(t, store.UpsertUser(context.Background(), core.User{
		ID:        id,
		DiscordID: id,
		Username:  "user-" + id,
	}))
}

func foodCategoryID(t *testing.T, store *storage.Store) int64 {
	t.Helper()

	categories, err := store.ListTemplateCategories(context.Background())
	require.NoError(t, err)
	for _, c := range categories {
		if c.Name == "Food & Dining" {
			return c.ID
		}
	}
	t.Fatal("Food & Dining template not seeded")
	return 0
}

func TestTransactionService_CreatePublishesEvent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	bindTestUser(t, store, "u1")
	publisher := &recordingPublisher{}
	svc := NewTransactionService(store, publisher)

	id, err := svc.Create(ctx, "u1", storage.CreateTransactionParams{
		Type:       core.TypeExpense,
		CategoryID: foodCategoryID(t, store),
		Amount:     decimal.RequireFromString("42.50"),
		Date:       core.NewDate(2024, 1, 15),
	})
	require.NoError(t, err)
	require.Positive(t, id)

	require.Len(t, publisher.published, 1)
	e := publisher.published[0]
	require.Equal(t, events.ActionTransactionCreated, e.Action)
	require.Equal(t, "u1", e.UserID)
	require.Equal(t, id, e.TransactionID)
}

func TestTransactionService_CreateSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	bindTestUser(t, store, "u1")
	svc := NewTransactionService(store, &recordingPublisher{err: errors.New("broker down")})

	id, err := svc.Create(ctx, "u1", storage.CreateTransactionParams{
		Type:       core.TypeExpense,
		CategoryID: foodCategoryID(t, store),
		Amount:     decimal.NewFromInt(10),
		Date:       core.NewDate(2024, 1, 16),
	})
	require.NoError(t, err, "a broker failure must not fail the request")
	require.Positive(t, id)

	views, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, views, 1)
}

func TestTransactionService_NilPublisher(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	bindTestUser(t, store, "u1")
	svc := NewTransactionService(store, nil)

	id, err := svc.Create(ctx, "u1", storage.CreateTransactionParams{
		Type:       core.TypeExpense,
		CategoryID: foodCategoryID(t, store),
		Amount:     decimal.NewFromInt(5),
		Date:       core.NewDate(2024, 1, 17),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", id))
}

func TestTransactionService_DeletePublishesEvent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	bindTestUser(t, store, "u1")
	publisher := &recordingPublisher{}
	svc := NewTransactionService(store, publisher)

	id, err := svc.Create(ctx, "u1", storage.CreateTransactionParams{
		Type:       core.TypeExpense,
		CategoryID: foodCategoryID(t, store),
		Amount:     decimal.NewFromInt(7),
		Date:       core.NewDate(2024, 1, 18),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", id))

	require.Len(t, publisher.published, 2)
	require.Equal(t, events.ActionTransactionDeleted, publisher.published[1].Action)
	require.Equal(t, id, publisher.published[1].TransactionID)
}

func TestIdentityService_Bind(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	publisher := &recordingPublisher{}
	svc := NewIdentityService(store, publisher)

	hash := "abc123"
	email := "alice@example.com"
	userID, err := svc.Bind(ctx, &auth.Profile{
		ID:       "111222333",
		Username: "alice",
		Avatar:   &hash,
		Email:    &email,
	})
	require.NoError(t, err)
	require.Equal(t, "111222333", userID)

	user, err := svc.CurrentUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "111222333", user.DiscordID)
	require.Equal(t, "alice", user.Username)
	require.NotNil(t, user.Avatar)
	require.Equal(t, "https://cdn.discordapp.com/avatars/111222333/abc123.png", *user.Avatar)

	require.Len(t, publisher.published, 1)
	require.Equal(t, events.ActionUserBound, publisher.published[0].Action)

	// Second sign-in without an avatar clears it.
	_, err = svc.Bind(ctx, &auth.Profile{ID: "111222333", Username: "alice"})
	require.NoError(t, err)

	user, err = svc.CurrentUser(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, user.Avatar)
}
