package cluster

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthAggregator(t *testing.T) {
	h := NewHealthAggregator()

	rec := httptest.NewRecorder()
	h.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	h.AddCheck("db", func() error { return nil })
	h.AddCheck("nats", func() error { return errors.New("disconnected") })

	rec = httptest.NewRecorder()
	h.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, map[string]string{"nats": "disconnected"}, body)
}

func TestRegistration(t *testing.T) {
	reg := Registration{ServiceName: "deckrush", Address: "game-1", Port: 8080, Tags: []string{"ws"}}
	require.Equal(t, "deckrush-game-1", reg.ServiceID())

	agent := reg.agentRegistration()
	require.Equal(t, "deckrush", agent.Name)
	require.Equal(t, 8080, agent.Port)
	require.Equal(t, "http://game-1:8080/health", agent.Check.HTTP)
	require.Equal(t, "1m", agent.Check.DeregisterCriticalServiceAfter)
}
