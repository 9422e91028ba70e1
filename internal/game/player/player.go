package player

import (
	"math/rand/v2"

	"deckrush/internal/game/card"
	"deckrush/internal/game/deck"
)

// Player is one seated participant. ID is the id of the connection that
// joined; a player never outlives its connection.
type Player struct {
	ID        string
	Name      string
	Score     int
	Connected bool

	deck *deck.Deck
}

// NewPlayer seats a player with a fresh starting deck.
func NewPlayer(id, name string, r *rand.Rand, ids card.IDGenerator) (*Player, error) {
	d, err := deck.NewStarterDeck(r, ids)
	if err != nil {
		return nil, err
	}
	return &Player{
		ID:        id,
		Name:      name,
		Connected: true,
		deck:      d,
	}, nil
}

func (p *Player) Deck() *deck.Deck {
	return p.deck
}

// PlayTop draws the next card, scores it and moves it to the discard pile.
// It returns false when the player has no card left anywhere.
func (p *Player) PlayTop(r *rand.Rand) (card.Card, bool) {
	c, ok := p.deck.Draw(r)
	if !ok {
		return card.Card{}, false
	}
	p.Score += c.Value
	p.deck.Discard(c)
	return c, true
}

// CanAfford reports whether the score covers cost.
func (p *Player) CanAfford(cost int) bool {
	return p.Score >= cost
}

// View is the wire representation of a player.
type View struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Deck        card.Pile `json:"deck"`
	DiscardPile card.Pile `json:"discardPile"`
	Score       int       `json:"score"`
	Connected   bool      `json:"connected"`
}

func (p *Player) View() View {
	return View{
		ID:          p.ID,
		Name:        p.Name,
		Deck:        p.deck.DrawPile(),
		DiscardPile: p.deck.DiscardPile(),
		Score:       p.Score,
		Connected:   p.Connected,
	}
}
