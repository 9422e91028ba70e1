package session

import (
	"errors"

	"deckrush/internal/network"
	"deckrush/internal/session/message"
)

const defaultPlayerName = "Player"

func (h *GameHandler) registerGameHandlers() {
	h.router[message.TypePlayerJoin] = handlePlayerJoin
	h.router[message.TypeStartGame] = handleStartGame
	h.router[message.TypeBuyCard] = handleBuyCard
}

// handlePlayerJoin seats the connection. The joiner gets the state right
// away, then a waiting notice while alone, then everybody gets the state.
func handlePlayerJoin(h *GameHandler, c *network.Client, msg network.Message) {
	name, err := message.DecodeString(msg, "name")
	if err != nil {
		h.log.Debug().Err(err).Str("client", c.ID()).Msg("ignoring join")
		return
	}
	if name == "" {
		name = defaultPlayerName
	}

	p, err := h.state.players.Join(c.ID(), name, h.state.started, h.opts.Rand, h.opts.IDs)
	switch {
	case errors.Is(err, ErrGameFull):
		h.log.Info().Str("client", c.ID()).Str("name", name).Msg("join rejected, game full")
		h.send(c, message.CreateGameFull())
		return
	case errors.Is(err, ErrAlreadySeated):
		h.log.Debug().Str("client", c.ID()).Msg("ignoring repeated join")
		return
	case err != nil:
		h.log.Error().Err(err).Str("client", c.ID()).Msg("could not seat player")
		return
	}

	h.log.Info().Str("client", c.ID()).Str("name", p.Name).Int("players", h.state.players.Count()).Msg("player joined")

	h.sendState(c)
	if h.state.players.Count() < MaxPlayers {
		h.send(c, message.CreateWaitingForPlayers())
	}
	h.broadcastState()
}

func handleStartGame(h *GameHandler, c *network.Client, _ network.Message) {
	if !h.startGame() {
		h.log.Debug().Str("client", c.ID()).Str("phase", string(h.state.Phase())).Msg("ignoring start")
	}
}

func handleBuyCard(h *GameHandler, c *network.Client, msg network.Message) {
	cardID, err := message.DecodeString(msg, "cardId")
	if err != nil {
		h.log.Debug().Err(err).Str("client", c.ID()).Msg("ignoring purchase")
		return
	}

	purchase, err := h.state.purchase(c.ID(), cardID, h.opts.IDs)
	switch {
	case errors.Is(err, ErrInsufficientPoints):
		msg, err := message.CreateErrorResponse(InsufficientPointsMessage)
		if err != nil {
			h.log.Error().Err(err).Msg("could not encode error")
			return
		}
		h.send(c, msg)
		return
	case err != nil:
		// Stale requests race the end of a game or a shop refresh.
		h.log.Debug().Err(err).Str("client", c.ID()).Str("card", cardID).Msg("ignoring purchase")
		return
	}

	h.log.Debug().
		Str("client", c.ID()).
		Str("card", cardID).
		Int("cost", purchase.Cost).
		Stringer("added", purchase.Added).
		Stringer("replacement", purchase.Replacement).
		Msg("card purchased")

	h.broadcastEncoded(message.CreateCardPurchased(purchase.PlayerID, purchase.ShopCardID))
	h.broadcastState()
}

// InsufficientPointsMessage is the text of the private purchase rejection.
const InsufficientPointsMessage = "Insufficient points"
