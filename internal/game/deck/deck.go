package deck

import (
	"fmt"
	"math/rand/v2"

	"deckrush/internal/game/card"
)

// starterCounts is the composition of every starting deck: value -> copies.
var starterCounts = []struct {
	value  int
	copies int
}{
	{value: 1, copies: 5},
	{value: 5, copies: 4},
	{value: 10, copies: 1},
}

// StarterSize is the number of cards in a fresh starting deck.
const StarterSize = 10

// Deck is one player's card pool, split into the draw pile and the discard
// pile. The top of the draw pile is its last element.
type Deck struct {
	draw    card.Pile
	discard card.Pile
}

// NewDeck returns an empty deck.
func NewDeck() *Deck {
	return &Deck{
		draw:    card.Pile{},
		discard: card.Pile{},
	}
}

// NewStarterDeck builds the ten card starting deck. Orders 1..10 are stamped
// before the shuffle, so a card's position says nothing about its order.
func NewStarterDeck(r *rand.Rand, ids card.IDGenerator) (*Deck, error) {
	d := NewDeck()
	order := 1
	for _, sc := range starterCounts {
		for i := 0; i < sc.copies; i++ {
			c, err := card.New(ids.Next(), sc.value, order)
			if err != nil {
				return nil, fmt.Errorf("failed to build starting deck: %w", err)
			}
			d.draw.Push(c)
			order++
		}
	}
	d.draw.Shuffle(r)
	return d, nil
}

// Draw removes the top card of the draw pile. An empty draw pile is refilled
// from the shuffled discard pile first, once per call. When both piles are
// empty it returns false and nothing changes.
func (d *Deck) Draw(r *rand.Rand) (card.Card, bool) {
	if d.draw.Size() == 0 {
		if d.discard.Size() == 0 {
			return card.Card{}, false
		}
		d.draw, d.discard = d.discard, card.Pile{}
		d.draw.Shuffle(r)
	}
	return d.draw.Pop()
}

// Discard puts a card on top of the discard pile.
func (d *Deck) Discard(c card.Card) {
	d.discard.Push(c)
}

// NextOrder is one more than the highest order across both piles, or 1.
func (d *Deck) NextOrder() int {
	max := d.draw.MaxOrder()
	if m := d.discard.MaxOrder(); m > max {
		max = m
	}
	return max + 1
}

// PurchasedCard builds the card a shop purchase would add, without adding it.
func (d *Deck) PurchasedCard(id string, value int) (card.Card, error) {
	return card.New(id, value, d.NextOrder())
}

// AddPurchased places a card built by PurchasedCard on the discard pile; it
// becomes drawable after the next reshuffle. A card whose order is not the
// deck's next order is refused.
func (d *Deck) AddPurchased(c card.Card) error {
	if next := d.NextOrder(); c.Order != next {
		return fmt.Errorf("purchased card %s has order %d, expected %d", c.ID, c.Order, next)
	}
	d.discard.Push(c)
	return nil
}

// DrawPile returns a copy of the draw pile, bottom first.
func (d *Deck) DrawPile() card.Pile {
	return d.draw.Clone()
}

// DiscardPile returns a copy of the discard pile, bottom first.
func (d *Deck) DiscardPile() card.Pile {
	return d.discard.Clone()
}

// Size is the total number of cards the deck owns.
func (d *Deck) Size() int {
	return d.draw.Size() + d.discard.Size()
}
