package deck

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"deckrush/internal/game/card"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func orders(piles ...card.Pile) []int {
	var out []int
	for _, p := range piles {
		for _, c := range p {
			out = append(out, c.Order)
		}
	}
	return out
}

func TestStarterDeck(t *testing.T) {
	d, err := NewStarterDeck(newRand(), &card.SequenceGenerator{Prefix: "c"})
	require.NoError(t, err)
	require.Equal(t, StarterSize, d.Size())
	require.Empty(t, d.DiscardPile())

	values := map[int]int{}
	for _, c := range d.DrawPile() {
		values[c.Value]++
	}
	require.Equal(t, map[int]int{1: 5, 5: 4, 10: 1}, values)
	require.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, orders(d.DrawPile()))
}

func TestDrawEmptyDeck(t *testing.T) {
	d := NewDeck()
	_, ok := d.Draw(newRand())
	require.False(t, ok)
	require.Equal(t, 0, d.Size())
}

func TestDrawReshuffles(t *testing.T) {
	r := newRand()
	d, err := NewStarterDeck(r, &card.SequenceGenerator{Prefix: "c"})
	require.NoError(t, err)

	for i := 0; i < StarterSize; i++ {
		c, ok := d.Draw(r)
		require.True(t, ok)
		d.Discard(c)
		require.Equal(t, StarterSize, d.Size())
	}
	require.Empty(t, d.DrawPile())
	require.Len(t, d.DiscardPile(), StarterSize)

	// Draw pile empty: the discard pile comes back before the pop.
	_, ok := d.Draw(r)
	require.True(t, ok)
	require.Len(t, d.DrawPile(), StarterSize-1)
	require.Empty(t, d.DiscardPile())
}

func TestDrawTakesTop(t *testing.T) {
	d := NewDeck()
	d.draw.Push(card.Card{ID: "bottom", Value: 1, Order: 1})
	d.draw.Push(card.Card{ID: "top", Value: 2, Order: 2})

	c, ok := d.Draw(newRand())
	require.True(t, ok)
	require.Equal(t, "top", c.ID)
}

func TestAddPurchased(t *testing.T) {
	r := newRand()
	d, err := NewStarterDeck(r, &card.SequenceGenerator{Prefix: "c"})
	require.NoError(t, err)
	require.Equal(t, StarterSize+1, d.NextOrder())

	c, err := d.PurchasedCard("bought", 17)
	require.NoError(t, err)
	require.Equal(t, StarterSize+1, c.Order)
	require.Equal(t, 17, c.Value)
	require.Equal(t, StarterSize, d.Size())

	require.NoError(t, d.AddPurchased(c))
	require.Equal(t, StarterSize+1, d.Size())

	discard := d.DiscardPile()
	require.Equal(t, "bought", discard[len(discard)-1].ID)

	// The same card cannot be committed twice.
	require.Error(t, d.AddPurchased(c))
	require.Equal(t, StarterSize+1, d.Size())

	// Orders stay unique across both piles.
	c2, err := d.PurchasedCard("again", 3)
	require.NoError(t, err)
	require.Equal(t, StarterSize+2, c2.Order)
	require.NoError(t, d.AddPurchased(c2))

	seen := map[int]bool{}
	for _, o := range orders(d.DrawPile(), d.DiscardPile()) {
		require.False(t, seen[o], "duplicate order %d", o)
		seen[o] = true
	}
}

func TestEmptyDeckFirstPurchase(t *testing.T) {
	d := NewDeck()
	c, err := d.PurchasedCard("x", 5)
	require.NoError(t, err)
	require.Equal(t, 1, c.Order)
	require.Equal(t, 0, d.Size())
}

func TestPilesAreCopies(t *testing.T) {
	d, err := NewStarterDeck(newRand(), &card.SequenceGenerator{Prefix: "c"})
	require.NoError(t, err)

	pile := d.DrawPile()
	pile[0].Value = 1000
	require.NotEqual(t, 1000, d.DrawPile()[0].Value)
}
