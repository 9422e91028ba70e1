package message

// Isso aqui são as mensagens que vão no sentido servidor -> client.
import (
	"deckrush/internal/game/card"
	"deckrush/internal/network"
)

// Inbound event types.
const (
	TypePlayerJoin = "player-join"
	TypeStartGame  = "start-game"
	TypeBuyCard    = "buy-card"
)

// Outbound event types.
const (
	TypeGameState         = "game-state"
	TypeWaitingForPlayers = "waiting-for-players"
	TypeGameFull          = "game-full"
	TypeGameStarted       = "game-started"
	TypeCardPlayed        = "card-played"
	TypeCardPurchased     = "card-purchased"
	TypeError             = "error"
	TypeGameEnded         = "game-ended"
)

type CardPlayedPayload struct {
	PlayerID string    `json:"playerId"`
	Card     card.Card `json:"card"`
}

type CardPurchasedPayload struct {
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// GameEndedPayload carries the winner id, null on a tie.
type GameEndedPayload struct {
	Winner *string `json:"winner"`
}

// CreateGameState wraps an already built snapshot. The snapshot must not share
// memory with live game state, since it is encoded right away.
func CreateGameState(snapshot any) (network.Message, error) {
	return network.NewMessage(TypeGameState, snapshot)
}

func CreateWaitingForPlayers() network.Message {
	return network.Message{Type: TypeWaitingForPlayers}
}

func CreateGameFull() network.Message {
	return network.Message{Type: TypeGameFull}
}

func CreateGameStarted() network.Message {
	return network.Message{Type: TypeGameStarted}
}

func CreateCardPlayed(playerID string, c card.Card) (network.Message, error) {
	return network.NewMessage(TypeCardPlayed, CardPlayedPayload{PlayerID: playerID, Card: c})
}

func CreateCardPurchased(playerID, cardID string) (network.Message, error) {
	return network.NewMessage(TypeCardPurchased, CardPurchasedPayload{PlayerID: playerID, CardID: cardID})
}

func CreateErrorResponse(errorMsg string) (network.Message, error) {
	return network.NewMessage(TypeError, ErrorPayload{Message: errorMsg})
}

func CreateGameEnded(winner *string) (network.Message, error) {
	return network.NewMessage(TypeGameEnded, GameEndedPayload{Winner: winner})
}
