package storage

import (
	"context"
	"errors"
	"testing"

	"pocketledger/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpsertUser_InsertThenFullReplace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.UpsertUser(ctx, core.User{
		ID:        "u1",
		DiscordID: "111",
		Username:  "alice",
		Avatar:    strPtr("https://cdn.discordapp.com/avatars/111/abc.png"),
		Email:     strPtr("alice@example.com"),
	})
	require.NoError(t, err)

	got, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "111", got.DiscordID)
	require.Equal(t, "alice", got.Username)
	require.NotNil(t, got.Avatar)
	require.NotNil(t, got.Email)

	// A later sign-in without avatar or email must clear both: the upsert is
	// a full replace, not a merge.
	err = s.UpsertUser(ctx, core.User{
		ID:        "u1",
		DiscordID: "111",
		Username:  "alice2",
	})
	require.NoError(t, err)

	got, err = s.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "alice2", got.Username)
	require.Nil(t, got.Avatar, "avatar removed upstream must be cleared")
	require.Nil(t, got.Email, "email removed upstream must be cleared")
}

// Re-binding an identity must never disturb the user's ledger. This guards
// the upsert against the OR REPLACE formulation, whose delete-then-insert
// would cascade the user's transactions away.
func TestUpsertUser_RepeatKeepsTransactions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seedUser(t, s, "u1")

	_, err := s.CreateTransaction(ctx, "u1", CreateTransactionParams{
		Type:       core.TypeExpense,
		CategoryID: templateID(t, s, "Travel"),
		Amount:     decimal.NewFromInt(80),
		Date:       core.NewDate(2024, 4, 4),
	})
	require.NoError(t, err)

	seedUser(t, s, "u1")

	views, err := s.ListTransactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, views, 1)
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "missing")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}
