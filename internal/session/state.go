package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"deckrush/internal/game/card"
	"deckrush/internal/game/player"
	"deckrush/internal/game/shop"
)

// Phase is the lifecycle position of the game, derived from GameState.
type Phase string

const (
	PhaseLobby   Phase = "lobby"   // 0 or 1 players seated
	PhaseReady   Phase = "ready"   // 2 players seated, not started
	PhasePlaying Phase = "playing" // clock running
	PhaseEnded   Phase = "ended"   // waiting for the reset
)

// GameState is the single mutable game. Only GameHandler touches it, always
// with its lock held.
type GameState struct {
	id            string
	players       *Registry
	shop          *shop.Shop
	started       bool
	ended         bool
	timeRemaining int
	winner        *string
	startedAt     time.Time
}

func newGameState(id string, shopSize, timeLimit int, r *rand.Rand, ids card.IDGenerator) (*GameState, error) {
	s, err := shop.NewShop(shopSize, r, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	return &GameState{
		id:            id,
		players:       NewRegistry(),
		shop:          s,
		timeRemaining: timeLimit,
	}, nil
}

func (s *GameState) Phase() Phase {
	switch {
	case s.started:
		return PhasePlaying
	case s.ended:
		return PhaseEnded
	case s.players.Count() == MaxPlayers:
		return PhaseReady
	default:
		return PhaseLobby
	}
}

// Snapshot is the wire form of GameState. It shares no memory with the
// state it was taken from.
type Snapshot struct {
	Players       []player.View   `json:"players"`
	ShopCards     []card.ShopCard `json:"shopCards"`
	GameStarted   bool            `json:"gameStarted"`
	GameEnded     bool            `json:"gameEnded"`
	TimeRemaining int             `json:"timeRemaining"`
	Winner        *string         `json:"winner"`
}

func (s *GameState) Snapshot() Snapshot {
	players := make([]player.View, 0, s.players.Count())
	for _, p := range s.players.Players() {
		players = append(players, p.View())
	}

	var winner *string
	if s.winner != nil {
		w := *s.winner
		winner = &w
	}

	return Snapshot{
		Players:       players,
		ShopCards:     s.shop.Cards(),
		GameStarted:   s.started,
		GameEnded:     s.ended,
		TimeRemaining: s.timeRemaining,
		Winner:        winner,
	}
}
