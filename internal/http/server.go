package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"pocketledger/internal/auth"
	"pocketledger/internal/config"
	applog "pocketledger/internal/log"
	"pocketledger/internal/middleware/ratelimit"
	"pocketledger/internal/middleware/security"
	"pocketledger/internal/service"
	"pocketledger/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

// Server is the ledger's HTTP front. The auth collaborator's UI talks to it
// and nothing else does.
type Server struct {
	http.Server

	store        *storage.Store
	transactions *service.TransactionService
	identity     *service.IdentityService
	discord      *auth.Discord // nil disables the sign-in endpoints

	sessionSecret []byte
	sessionTTL    time.Duration

	limiter      *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
// discord may be nil when OAuth credentials are not configured.
func NewServer(
	cfg *config.Config,
	logger *applog.Logger,
	store *storage.Store,
	transactions *service.TransactionService,
	identity *service.IdentityService,
	discord *auth.Discord,
) *Server {
	s := &Server{
		store:         store,
		transactions:  transactions,
		identity:      identity,
		discord:       discord,
		sessionSecret: []byte(cfg.SessionSecret),
		sessionTTL:    cfg.SessionTTL,
		limiter:       ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(applog.Middleware(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(s.limiter.Middleware)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)

	// Template categories are shared and readable without a session.
	r.Get("/categories", s.handleListCategories)

	r.Get("/auth/login", s.handleLogin)
	r.Get("/auth/callback", s.handleCallback)
	r.Post("/auth/logout", s.handleLogout)

	// Owner-scoped routes: identity is resolved before any store access.
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.sessionSecret))

		r.Get("/transactions", s.handleListTransactions)
		r.Post("/transactions", s.handleCreateTransaction)
		r.Delete("/transactions", s.handleDeleteTransaction)
		r.Get("/stats", s.handleStats)
		r.Get("/auth/me", s.handleMe)
	})

	s.Server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return s
}

// Shutdown gracefully shuts down the server and its rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
