package session

import (
	"errors"

	"deckrush/internal/game/card"
)

var (
	ErrNotStarted         = errors.New("game has not started")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrUnknownCard        = errors.New("unknown shop card")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// Purchase describes an applied purchase.
type Purchase struct {
	PlayerID    string
	ShopCardID  string
	Cost        int
	Added       card.Card
	Replacement card.ShopCard
}

// purchase buys shopCardID for playerID. Either every change is applied or
// none is: the new card is built first, the shop slot is replaced next and
// only then, when nothing can fail any more, the player is charged.
func (s *GameState) purchase(playerID, shopCardID string, ids card.IDGenerator) (Purchase, error) {
	if !s.started {
		return Purchase{}, ErrNotStarted
	}
	p := s.players.Find(playerID)
	if p == nil {
		return Purchase{}, ErrUnknownPlayer
	}
	index, sc, ok := s.shop.Find(shopCardID)
	if !ok {
		return Purchase{}, ErrUnknownCard
	}
	if !p.CanAfford(sc.Cost) {
		return Purchase{}, ErrInsufficientPoints
	}

	added, err := p.Deck().PurchasedCard(ids.Next(), sc.Value)
	if err != nil {
		return Purchase{}, err
	}
	replacement, err := s.shop.Replace(index)
	if err != nil {
		return Purchase{}, err
	}

	// added carries the deck's next order, so this cannot be refused.
	if err := p.Deck().AddPurchased(added); err != nil {
		return Purchase{}, err
	}
	p.Score -= sc.Cost

	return Purchase{
		PlayerID:    playerID,
		ShopCardID:  shopCardID,
		Cost:        sc.Cost,
		Added:       added,
		Replacement: replacement,
	}, nil
}
