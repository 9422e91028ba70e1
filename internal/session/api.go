package session

import (
	"encoding/json"
	"net/http"
)

// StateHandler serves the current snapshot as JSON, for dashboards and
// clients that only want to look.
func (h *GameHandler) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		snapshot := h.Snapshot()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(snapshot)
	}
}
