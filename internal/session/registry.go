package session

import (
	"errors"
	"math/rand/v2"

	"deckrush/internal/game/card"
	"deckrush/internal/game/player"
)

// MaxPlayers is the seat count of a game.
const MaxPlayers = 2

var (
	ErrGameFull      = errors.New("game is full")
	ErrAlreadySeated = errors.New("connection already has a seat")
)

// Registry tracks the seated players in join order.
type Registry struct {
	players []*player.Player
}

func NewRegistry() *Registry {
	return &Registry{players: make([]*player.Player, 0, MaxPlayers)}
}

// Join seats connID under name with a fresh starting deck. It fails with
// ErrGameFull once the game has started or every seat is taken.
func (r *Registry) Join(connID, name string, gameStarted bool, rng *rand.Rand, ids card.IDGenerator) (*player.Player, error) {
	if gameStarted || len(r.players) >= MaxPlayers {
		return nil, ErrGameFull
	}
	if r.Find(connID) != nil {
		return nil, ErrAlreadySeated
	}

	p, err := player.NewPlayer(connID, name, rng, ids)
	if err != nil {
		return nil, err
	}
	r.players = append(r.players, p)
	return p, nil
}

// Leave removes connID's player. Removing a non-member does nothing and
// returns false.
func (r *Registry) Leave(connID string) bool {
	for i, p := range r.players {
		if p.ID == connID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Registry) Find(connID string) *player.Player {
	for _, p := range r.players {
		if p.ID == connID {
			return p
		}
	}
	return nil
}

func (r *Registry) Count() int {
	return len(r.players)
}

// Players returns the seated players in seat order. The slice must not be
// modified.
func (r *Registry) Players() []*player.Player {
	return r.players
}
