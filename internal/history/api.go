package history

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type playerJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type resultJSON struct {
	GameID    string       `json:"gameId"`
	StartedAt time.Time    `json:"startedAt"`
	EndedAt   time.Time    `json:"endedAt"`
	Reason    string       `json:"reason"`
	Winner    *string      `json:"winner"`
	Players   []playerJSON `json:"players"`
}

// Handler serves GET /results?limit=N.
func (s *Store) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		limit := defaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = min(n, maxLimit)
		}

		results, err := s.Recent(r.Context(), limit)
		if err != nil {
			s.log.Error().Err(err).Msg("could not list results")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]resultJSON, 0, len(results))
		for _, res := range results {
			players := make([]playerJSON, 0, len(res.Players))
			for _, p := range res.Players {
				players = append(players, playerJSON{ID: p.PlayerID, Name: p.Name, Score: p.Score})
			}
			out = append(out, resultJSON{
				GameID:    res.GameID,
				StartedAt: res.StartedAt,
				EndedAt:   res.EndedAt,
				Reason:    res.Reason,
				Winner:    res.Winner,
				Players:   players,
			})
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(out)
	}
}
