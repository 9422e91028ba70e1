package shop

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"deckrush/internal/game/card"
)

func newShop(t *testing.T, size int) *Shop {
	t.Helper()
	s, err := NewShop(size, rand.New(rand.NewPCG(3, 5)), &card.SequenceGenerator{Prefix: "shop-"})
	require.NoError(t, err)
	return s
}

func requireInRange(t *testing.T, c card.ShopCard) {
	t.Helper()
	require.GreaterOrEqual(t, c.Value, minValue)
	require.LessOrEqual(t, c.Value, maxValue)
	require.GreaterOrEqual(t, c.Cost, minCost)
	require.LessOrEqual(t, c.Cost, maxCost)
	require.Equal(t, 0, c.Order)
}

func TestNewShop(t *testing.T) {
	s := newShop(t, DefaultSize)
	require.Equal(t, DefaultSize, s.Size())
	for _, c := range s.Cards() {
		requireInRange(t, c)
	}

	_, err := NewShop(0, rand.New(rand.NewPCG(1, 1)), card.UUIDGenerator{})
	require.Error(t, err)
}

func TestRandomRanges(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 1000; i++ {
		v := generateRandomCardValue(r)
		require.True(t, v >= minValue && v <= maxValue)
		c := generateRandomCardCost(r)
		require.True(t, c >= minCost && c <= maxCost)
	}
}

func TestReplace(t *testing.T) {
	s := newShop(t, DefaultSize)
	before := s.Cards()

	idx, found, ok := s.Find(before[1].ID)
	require.True(t, ok)
	require.Equal(t, 1, idx)
	require.Equal(t, before[1], found)

	replacement, err := s.Replace(idx)
	require.NoError(t, err)
	requireInRange(t, replacement)
	require.NotEqual(t, before[1].ID, replacement.ID)

	after := s.Cards()
	require.Len(t, after, DefaultSize)
	require.Equal(t, before[0], after[0])
	require.Equal(t, replacement, after[1])
	require.Equal(t, before[2], after[2])

	_, _, ok = s.Find(before[1].ID)
	require.False(t, ok)

	_, err = s.Replace(DefaultSize)
	require.Error(t, err)
}

func TestCardsIsCopy(t *testing.T) {
	s := newShop(t, DefaultSize)
	cards := s.Cards()
	cards[0].Cost = 1000
	require.NotEqual(t, 1000, s.Cards()[0].Cost)
}
