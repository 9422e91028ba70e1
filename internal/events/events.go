// Package events announces game lifecycle changes to other services.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sasha-s/go-deadlock"
)

type Kind string

const (
	GameStarted Kind = "game.started"
	GameEnded   Kind = "game.ended"
)

type PlayerScore struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Event is the JSON body published for every lifecycle change.
type Event struct {
	Kind    Kind          `json:"kind"`
	GameID  string        `json:"gameId"`
	At      time.Time     `json:"at"`
	Players []PlayerScore `json:"players"`
	Winner  *string       `json:"winner,omitempty"`
	Reason  string        `json:"reason,omitempty"`
}

func (e Event) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", e.Kind, err)
	}
	return data, nil
}

// Publisher must not block the caller for long: it is invoked while the game
// state lock is held.
type Publisher interface {
	Publish(e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(Event) error { return nil }

// Recorder keeps events in memory.
type Recorder struct {
	mu     deadlock.Mutex
	events []Event
}

func (r *Recorder) Publish(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
