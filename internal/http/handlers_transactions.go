package http

import (
	"net/http"
	"strconv"

	"pocketledger/internal/auth"
	"pocketledger/internal/core"
	"pocketledger/internal/storage"

	"github.com/shopspring/decimal"
)

// createTransactionRequest mirrors the client payload. Beyond being
// well-formed, the fields are accepted as given; amount sign, category
// existence and type agreement are deliberately not checked here.
type createTransactionRequest struct {
	Type        core.TransactionType `json:"type"`
	CategoryID  int64                `json:"categoryId"`
	Amount      decimal.Decimal      `json:"amount"`
	Description *string              `json:"description"`
	Date        core.Date            `json:"date"`
}

// handleListTransactions returns the owner's full ledger, most recent first.
// GET /transactions
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	views, err := s.transactions.List(r.Context(), ownerID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, views)
}

// handleCreateTransaction records one transaction for the owner.
// POST /transactions
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := s.transactions.Create(r.Context(), ownerID, storage.CreateTransactionParams{
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]int64{"id": id})
}

// handleDeleteTransaction deletes the owner's transaction by id. An id that
// does not exist or belongs to another owner still answers success, hiding
// cross-owner existence.
// DELETE /transactions?id=<id>
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		respondError(w, r, http.StatusBadRequest, "Transaction ID required")
		return
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Transaction ID must be a number")
		return
	}

	if err := s.transactions.Delete(r.Context(), ownerID, id); err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// handleStats returns the owner's ledger totals.
// GET /stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := s.transactions.Stats(r.Context(), ownerID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, stats)
}
