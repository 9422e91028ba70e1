// Bot que entra no jogo, inicia a partida e compra sempre a melhor carta
// que consegue pagar. Serve para teste de carga e para jogar sozinho.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"deckrush/internal/game/card"
	"deckrush/internal/game/player"
	"deckrush/internal/network"
	"deckrush/internal/session"
	"deckrush/internal/session/message"
)

var CLI struct {
	URL   string        `help:"WebSocket endpoint of the server." default:"ws://localhost:8080/ws"`
	Name  string        `help:"Display name. Defaults to a random bot name."`
	Think time.Duration `help:"Pause between purchases." default:"1500ms"`
	Debug bool          `help:"Whether to enable debug logging."`
}

type bot struct {
	name      string
	conn      *websocket.Conn
	think     time.Duration
	lastBuy   time.Time
	requested bool
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI, kong.Name("simple-bot"), kong.UsageOnError())
	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	name := CLI.Name
	if name == "" {
		name = fmt.Sprintf("bot-%04d", rand.IntN(10000))
	}

	conn, _, err := websocket.DefaultDialer.Dial(CLI.URL, nil)
	if err != nil {
		log.Fatal().Err(err).Str("url", CLI.URL).Msg("could not connect to server")
	}
	defer conn.Close()

	b := &bot{name: name, conn: conn, think: CLI.Think}
	if err := b.run(); err != nil {
		log.Error().Err(err).Str("name", name).Msg("bot stopped")
		os.Exit(1)
	}
}

func (b *bot) write(msgType string, payload any) error {
	msg, err := network.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	return b.conn.WriteJSON(msg)
}

func (b *bot) run() error {
	if err := b.write(message.TypePlayerJoin, map[string]string{"name": b.name}); err != nil {
		return fmt.Errorf("failed to join: %w", err)
	}
	log.Info().Str("name", b.name).Msg("joined")

	for {
		var msg network.Message
		if err := b.conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}

		switch msg.Type {
		case message.TypeGameState:
			var state session.Snapshot
			if err := msg.DecodePayload(&state); err != nil {
				log.Warn().Err(err).Msg("bad state payload")
				continue
			}
			if err := b.onState(state); err != nil {
				return err
			}
		case message.TypeGameFull:
			return fmt.Errorf("game is full")
		case message.TypeError:
			var e message.ErrorPayload
			msg.DecodePayload(&e)
			log.Debug().Str("error", e.Message).Msg("server refused")
		case message.TypeGameEnded:
			var ended message.GameEndedPayload
			msg.DecodePayload(&ended)
			winner := "none"
			if ended.Winner != nil {
				winner = *ended.Winner
			}
			log.Info().Str("winner", winner).Msg("game over")
		}
	}
}

func (b *bot) onState(state session.Snapshot) error {
	me := b.self(state)

	// O jogo resetou sem a gente; entra de novo.
	if me == nil {
		if !state.GameStarted && !state.GameEnded && len(state.Players) < session.MaxPlayers {
			b.requested = false
			return b.write(message.TypePlayerJoin, map[string]string{"name": b.name})
		}
		return nil
	}

	if !state.GameStarted {
		if !state.GameEnded && len(state.Players) == session.MaxPlayers && !b.requested {
			b.requested = true
			return b.write(message.TypeStartGame, nil)
		}
		return nil
	}
	b.requested = false

	if time.Since(b.lastBuy) < b.think {
		return nil
	}
	best, ok := bestAffordable(state.ShopCards, me.Score)
	if !ok {
		return nil
	}
	b.lastBuy = time.Now()
	log.Debug().Str("card", best.ID).Int("cost", best.Cost).Int("value", best.Value).Msg("buying")
	return b.write(message.TypeBuyCard, map[string]string{"cardId": best.ID})
}

func (b *bot) self(state session.Snapshot) *player.View {
	for i := range state.Players {
		if state.Players[i].Name == b.name {
			return &state.Players[i]
		}
	}
	return nil
}

// bestAffordable picks the highest value per point of cost among the cards
// the bot can pay for.
func bestAffordable(cards []card.ShopCard, score int) (card.ShopCard, bool) {
	var best card.ShopCard
	found := false
	for _, c := range cards {
		if c.Cost > score {
			continue
		}
		if !found || c.Value*best.Cost > best.Value*c.Cost {
			best, found = c, true
		}
	}
	return best, found
}
