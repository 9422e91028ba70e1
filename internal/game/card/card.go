package card

import "fmt"

// Card is a single scoring card. Order is stamped when the card enters a
// player's pool and never changes afterwards; shop cards carry order 0.
type Card struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
	Order int    `json:"order"`
}

// ShopCard is a Card on sale in the shop.
type ShopCard struct {
	Card
	Cost int `json:"cost"`
}

// ---- Construtores ----

func New(id string, value, order int) (Card, error) {
	c := Card{ID: id, Value: value, Order: order}

	validators := []cardValidator{
		validateID,
		validateValue,
		validateOrder,
	}

	for _, v := range validators {
		if err := v(c); err != nil {
			return Card{}, err
		}
	}

	return c, nil
}

func NewShopCard(id string, value, cost int) (ShopCard, error) {
	c, err := New(id, value, 0)
	if err != nil {
		return ShopCard{}, err
	}
	if cost < 0 {
		return ShopCard{}, fmt.Errorf("invalid card cost: %d (must be >= 0)", cost)
	}
	return ShopCard{Card: c, Cost: cost}, nil
}

func (c Card) String() string {
	return fmt.Sprintf("%s:%d#%d", c.ID, c.Value, c.Order)
}

func (c ShopCard) String() string {
	return fmt.Sprintf("%s:%d$%d", c.ID, c.Value, c.Cost)
}
