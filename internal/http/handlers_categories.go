package http

import "net/http"

// handleListCategories returns the deduplicated template catalog.
// GET /categories
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListTemplateCategories(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, categories)
}
