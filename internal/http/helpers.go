package http

import (
	"encoding/json"
	"net/http"

	applog "pocketledger/internal/log"
)

func respondJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, r *http.Request, code int, message string) {
	respondJSON(w, r, code, map[string]string{"error": message})
}

// respondStoreError hides storage details behind a generic service error;
// the specifics only go to the log.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	applog.FromContext(r.Context()).ErrorContext(r.Context(), "Store operation failed", "error", err)
	respondError(w, r, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
