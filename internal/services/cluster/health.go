package cluster

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/sasha-s/go-deadlock"
)

// CheckFunc returns an error when the checked dependency is unhealthy.
type CheckFunc func() error

// HealthAggregator permite registrar múltiplas verificações de saúde e as expõe
// através de um único endpoint HTTP.
type HealthAggregator struct {
	mu     deadlock.RWMutex
	checks map[string]CheckFunc
}

func NewHealthAggregator() *HealthAggregator {
	return &HealthAggregator{
		checks: make(map[string]CheckFunc),
	}
}

func (h *HealthAggregator) AddCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Run executes every check and returns the failures by name.
func (h *HealthAggregator) Run() map[string]string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	failures := make(map[string]string)
	for _, name := range names {
		if err := h.checks[name](); err != nil {
			failures[name] = err.Error()
		}
	}
	return failures
}

// Handler retorna 200 OK quando todas as verificações passam e 503 Service
// Unavailable com os erros quando alguma falha.
func (h *HealthAggregator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failures := h.Run()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if len(failures) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(failures)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}
}
