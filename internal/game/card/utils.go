package card

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Tipo para funções de validação
type cardValidator func(Card) error

// ---- Funções de validação ----

func validateID(c Card) error {
	if c.ID == "" {
		return fmt.Errorf("invalid card id: empty")
	}
	return nil
}

func validateValue(c Card) error {
	if c.Value < 0 {
		return fmt.Errorf("invalid card value: %d (must be >= 0)", c.Value)
	}
	return nil
}

func validateOrder(c Card) error {
	if c.Order < 0 {
		return fmt.Errorf("invalid card order: %d (must be >= 0)", c.Order)
	}
	return nil
}

// IDGenerator hands out card identifiers.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator produces random v4 identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) Next() string {
	return uuid.NewString()
}

// SequenceGenerator produces "<prefix><n>" identifiers, n starting at 1.
// Collision free within one process, used by tests and the bot.
type SequenceGenerator struct {
	Prefix string
	n      atomic.Uint64
}

func (g *SequenceGenerator) Next() string {
	return g.Prefix + strconv.FormatUint(g.n.Add(1), 10)
}
