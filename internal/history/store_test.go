package history

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func result(id string, ended time.Time, winner *string) Result {
	return Result{
		GameID:    id,
		StartedAt: ended.Add(-time.Minute),
		EndedAt:   ended,
		Reason:    "timeout",
		Winner:    winner,
		Players: []PlayerResult{
			{Seat: 0, PlayerID: "a-" + id, Name: "Alice", Score: 30},
			{Seat: 1, PlayerID: "b-" + id, Name: "Bob", Score: 20},
		},
	}
}

func TestSaveAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		winner := fmt.Sprintf("a-g%d", i)
		r := result(fmt.Sprintf("g%d", i), base.Add(time.Duration(i)*time.Minute), &winner)
		require.NoError(t, s.Save(ctx, &r))
		require.NotZero(t, r.ID)
	}

	results, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "g2", results[0].GameID)
	require.Equal(t, "g1", results[1].GameID)
	require.Len(t, results[0].Players, 2)
	require.Equal(t, "Alice", results[0].Players[0].Name)
	require.Equal(t, 1, results[0].Players[1].Seat)
	require.NotNil(t, results[0].Winner)
	require.Equal(t, "a-g2", *results[0].Winner)
}

func TestTieHasNoWinner(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := result("tie", time.Now().UTC(), nil)
	require.NoError(t, s.Save(ctx, &r))

	results, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Nil(t, results[0].Winner)
}

func TestRunDrainsQueue(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.NoError(t, s.Record(result("q1", time.Now().UTC(), nil)))
	require.NoError(t, s.Record(result("q2", time.Now().UTC(), nil)))

	require.Eventually(t, func() bool {
		results, err := s.Recent(context.Background(), 10)
		return err == nil && len(results) == 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	<-done
}

func TestHandler(t *testing.T) {
	s := openTestStore(t)
	winner := "a-h1"
	r := result("h1", time.Now().UTC(), &winner)
	require.NoError(t, s.Save(context.Background(), &r))

	rec := httptest.NewRecorder()
	s.Handler()(rec, httptest.NewRequest(http.MethodGet, "/results?limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "h1", body[0]["gameId"])
	require.Equal(t, "a-h1", body[0]["winner"])

	rec = httptest.NewRecorder()
	s.Handler()(rec, httptest.NewRequest(http.MethodGet, "/results?limit=abc", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler()(rec, httptest.NewRequest(http.MethodPost, "/results", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCheck(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Check())
}
