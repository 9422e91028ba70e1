package card

import "math/rand/v2"

// Pile is an ordered stack of cards; the top is the last element.
type Pile []Card

// Size retorna o número de cartas na pilha.
func (p *Pile) Size() int {
	if p == nil {
		return 0
	}
	return len(*p)
}

// Shuffle is a uniform Fisher-Yates shuffle in place.
func (p *Pile) Shuffle(r *rand.Rand) {
	n := p.Size()
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		(*p)[i], (*p)[j] = (*p)[j], (*p)[i]
	}
}

func (p *Pile) Push(c Card) {
	*p = append(*p, c)
}

// Pop removes and returns the top card.
func (p *Pile) Pop() (Card, bool) {
	n := p.Size()
	if n == 0 {
		return Card{}, false
	}
	top := (*p)[n-1]
	*p = (*p)[:n-1]
	return top, true
}

// MaxOrder returns the highest order in the pile, 0 when empty.
func (p *Pile) MaxOrder() int {
	max := 0
	if p == nil {
		return max
	}
	for _, c := range *p {
		if c.Order > max {
			max = c.Order
		}
	}
	return max
}

// Clone returns an independent copy; a nil or empty pile clones to an empty,
// non-nil pile so it encodes as [] rather than null.
func (p *Pile) Clone() Pile {
	out := make(Pile, p.Size())
	if p != nil {
		copy(out, *p)
	}
	return out
}
