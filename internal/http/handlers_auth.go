package http

import (
	"errors"
	"net/http"
	"time"

	"pocketledger/internal/auth"
	applog "pocketledger/internal/log"
	"pocketledger/internal/storage"

	"github.com/google/uuid"
)

const stateCookie = "ledger_oauth_state"

// handleLogin starts the Discord OAuth flow.
// GET /auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.discord == nil {
		respondError(w, r, http.StatusServiceUnavailable, "Discord sign-in is not configured")
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, s.discord.AuthCodeURL(state), http.StatusFound)
}

// handleCallback completes the OAuth flow: verify state, exchange the code,
// bind the identity and issue the session cookie.
// GET /auth/callback
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if s.discord == nil {
		respondError(w, r, http.StatusServiceUnavailable, "Discord sign-in is not configured")
		return
	}

	query := r.URL.Query()
	if query.Get("error") != "" {
		respondError(w, r, http.StatusBadRequest, "Discord sign-in was denied")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		respondError(w, r, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	code := query.Get("code")
	if code == "" {
		respondError(w, r, http.StatusBadRequest, "Authorization code required")
		return
	}

	ctx := r.Context()
	token, err := s.discord.Exchange(ctx, code)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "OAuth code exchange failed", "error", err)
		respondError(w, r, http.StatusBadGateway, "Discord sign-in failed")
		return
	}

	profile, err := s.discord.FetchProfile(ctx, token)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Profile fetch failed", "error", err)
		respondError(w, r, http.StatusBadGateway, "Discord sign-in failed")
		return
	}

	userID, err := s.identity.Bind(ctx, profile)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	session, err := auth.GenerateToken(userID, s.sessionSecret, s.sessionTTL)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Session token generation failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	clearCookie(w, stateCookie)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    session,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout expires the session cookie.
// POST /auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearCookie(w, auth.SessionCookie)
	respondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// handleMe returns the user row behind the session.
// GET /auth/me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.identity.CurrentUser(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, r, http.StatusNotFound, "User not found")
			return
		}
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, user)
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
