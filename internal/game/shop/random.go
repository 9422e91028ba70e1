package shop

import "math/rand/v2"

// Faixas (inclusivas) dos atributos sorteados para cada carta da loja.
const (
	minValue = 1
	maxValue = 20
	minCost  = 1
	maxCost  = 10
)

func generateRandomCardValue(r *rand.Rand) int {
	return minValue + r.IntN(maxValue-minValue+1)
}

func generateRandomCardCost(r *rand.Rand) int {
	return minCost + r.IntN(maxCost-minCost+1)
}
