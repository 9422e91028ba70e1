package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	require.Equal(t, "deckrush.game.ended", Subject("deckrush", GameEnded))
	require.Equal(t, "game.started", Subject("", GameStarted))
}

func TestEncode(t *testing.T) {
	winner := "p1"
	e := Event{
		Kind:   GameEnded,
		GameID: "g1",
		At:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Players: []PlayerScore{
			{ID: "p1", Name: "Alice", Score: 12},
			{ID: "p2", Name: "Bob", Score: 7},
		},
		Winner: &winner,
		Reason: "timeout",
	}

	data, err := e.Encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "game.ended", decoded["kind"])
	require.Equal(t, "p1", decoded["winner"])
	require.Len(t, decoded["players"], 2)

	// A tie leaves the winner out entirely.
	e.Winner = nil
	data, err = e.Encode()
	require.NoError(t, err)
	require.NotContains(t, string(data), "winner")
}

func TestRecorder(t *testing.T) {
	var r Recorder
	require.NoError(t, r.Publish(Event{Kind: GameStarted}))
	require.NoError(t, r.Publish(Event{Kind: GameEnded}))

	got := r.Events()
	require.Len(t, got, 2)
	require.Equal(t, GameStarted, got[0].Kind)
	require.Equal(t, GameEnded, got[1].Kind)
}
