package shop

import (
	"fmt"
	"math/rand/v2"

	"deckrush/internal/game/card"
)

// DefaultSize is the number of shop slots.
const DefaultSize = 3

// Shop is the shared pool of purchasable cards. The slot count never changes
// once the pool is generated.
type Shop struct {
	slots []card.ShopCard
	rng   *rand.Rand
	ids   card.IDGenerator
}

// NewShop generates a full pool of size slots.
func NewShop(size int, r *rand.Rand, ids card.IDGenerator) (*Shop, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid shop size: %d", size)
	}
	s := &Shop{
		slots: make([]card.ShopCard, size),
		rng:   r,
		ids:   ids,
	}
	for i := range s.slots {
		c, err := s.generate()
		if err != nil {
			return nil, err
		}
		s.slots[i] = c
	}
	return s, nil
}

func (s *Shop) generate() (card.ShopCard, error) {
	value := generateRandomCardValue(s.rng)
	cost := generateRandomCardCost(s.rng)
	c, err := card.NewShopCard(s.ids.Next(), value, cost)
	if err != nil {
		return card.ShopCard{}, fmt.Errorf("failed to generate a valid shop card: %w", err)
	}
	return c, nil
}

// Find locates a shop card by id.
func (s *Shop) Find(id string) (int, card.ShopCard, bool) {
	for i, c := range s.slots {
		if c.ID == id {
			return i, c, true
		}
	}
	return -1, card.ShopCard{}, false
}

// Replace overwrites the slot at index with a freshly generated card.
func (s *Shop) Replace(index int) (card.ShopCard, error) {
	if index < 0 || index >= len(s.slots) {
		return card.ShopCard{}, fmt.Errorf("index %d is out of bounds for a shop of size %d", index, len(s.slots))
	}
	c, err := s.generate()
	if err != nil {
		return card.ShopCard{}, err
	}
	s.slots[index] = c
	return c, nil
}

func (s *Shop) Size() int {
	return len(s.slots)
}

// Cards returns a copy of the slots in order.
func (s *Shop) Cards() []card.ShopCard {
	out := make([]card.ShopCard, len(s.slots))
	copy(out, s.slots)
	return out
}
