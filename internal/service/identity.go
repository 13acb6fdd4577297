package service

import (
	"context"
	"fmt"
	"log/slog"

	"pocketledger/internal/auth"
	"pocketledger/internal/core"
	"pocketledger/internal/events"
	"pocketledger/internal/storage"
)

// IdentityService binds external Discord identities to local user rows.
type IdentityService struct {
	store     *storage.Store
	publisher EventPublisher
}

func NewIdentityService(store *storage.Store, publisher EventPublisher) *IdentityService {
	return &IdentityService{
		store:     store,
		publisher: publisher,
	}
}

// Bind upserts the local user for the given Discord profile and returns its
// local id. The upsert is a full replace keyed on the stable local id (the
// Discord account id), so repeating it on every sign-in is safe and keeps
// the row current.
func (s *IdentityService) Bind(ctx context.Context, profile *auth.Profile) (string, error) {
	user := core.User{
		ID:        profile.ID,
		DiscordID: profile.ID,
		Username:  profile.Username,
		Avatar:    profile.AvatarURL(),
		Email:     profile.Email,
	}

	if err := s.store.UpsertUser(ctx, user); err != nil {
		return "", fmt.Errorf("bind identity: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishLedgerEvent(ctx, events.NewUserBoundEvent(user.ID)); err != nil {
			slog.ErrorContext(ctx, "Failed to publish user bound event",
				"error", err,
				"user_id", user.ID)
		}
	}

	slog.InfoContext(ctx, "Identity bound",
		"user_id", user.ID,
		"username", user.Username)

	return user.ID, nil
}

// CurrentUser fetches the user row behind an authenticated session.
func (s *IdentityService) CurrentUser(ctx context.Context, userID string) (*core.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}
