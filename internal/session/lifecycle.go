package session

import (
	"deckrush/internal/events"
	"deckrush/internal/game/clock"
	"deckrush/internal/game/player"
	"deckrush/internal/history"
	"deckrush/internal/session/message"
)

const (
	reasonTimeout    = "timeout"
	reasonDisconnect = "disconnect"
)

// startGame moves Ready to Playing. Outside Ready it does nothing.
func (h *GameHandler) startGame() bool {
	if h.state.Phase() != PhaseReady {
		return false
	}

	h.state.started = true
	h.state.timeRemaining = h.timeLimit()
	h.state.startedAt = h.opts.Now()
	h.startClock()

	h.log.Info().Str("game", h.state.id).Int("seconds", h.state.timeRemaining).Msg("game started")
	h.publish(events.GameStarted, "")

	h.broadcast(message.CreateGameStarted())
	h.broadcastState()
	return true
}

// endGame stops the clock, settles the winner and schedules the reset.
func (h *GameHandler) endGame(reason string) {
	h.stopClock()

	h.state.started = false
	h.state.ended = true
	h.state.winner = player.Winner(h.state.players.Players())

	ev := h.log.Info().Str("game", h.state.id).Str("reason", reason)
	if h.state.winner != nil {
		ev = ev.Str("winner", *h.state.winner)
	}
	ev.Msg("game ended")

	h.publish(events.GameEnded, reason)
	h.record(reason)

	h.broadcastEncoded(message.CreateGameEnded(h.state.winner))
	h.broadcastState()

	h.reset = h.opts.Scheduler.After(h.opts.ResetDelay, h.onReset)
}

// onReset replaces the finished game with a brand new empty one.
func (h *GameHandler) onReset(handle clock.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle != h.reset {
		return
	}
	h.reset = nil

	state, err := h.newState()
	if err != nil {
		h.log.Error().Err(err).Msg("could not reset game")
		return
	}
	h.state = state

	h.log.Info().Str("game", state.id).Msg("game reset")
	h.broadcastState()
}

// leave removes a departed connection's seat. Losing a player mid game ends it.
func (h *GameHandler) leave(connID string) {
	if !h.state.players.Leave(connID) {
		return
	}
	h.log.Info().Str("client", connID).Int("players", h.state.players.Count()).Msg("player left")

	if h.state.started && h.state.players.Count() < MaxPlayers {
		h.endGame(reasonDisconnect)
		return
	}
	h.broadcastState()
}

func (h *GameHandler) scores() []events.PlayerScore {
	players := h.state.players.Players()
	out := make([]events.PlayerScore, 0, len(players))
	for _, p := range players {
		out = append(out, events.PlayerScore{ID: p.ID, Name: p.Name, Score: p.Score})
	}
	return out
}

func (h *GameHandler) publish(kind events.Kind, reason string) {
	e := events.Event{
		Kind:    kind,
		GameID:  h.state.id,
		At:      h.opts.Now(),
		Players: h.scores(),
		Winner:  h.state.winner,
		Reason:  reason,
	}
	if err := h.opts.Publisher.Publish(e); err != nil {
		h.log.Warn().Err(err).Str("kind", string(kind)).Msg("could not publish event")
	}
}

func (h *GameHandler) record(reason string) {
	r := history.Result{
		GameID:    h.state.id,
		StartedAt: h.state.startedAt,
		EndedAt:   h.opts.Now(),
		Reason:    reason,
		Players:   make([]history.PlayerResult, 0, h.state.players.Count()),
	}
	if h.state.winner != nil {
		w := *h.state.winner
		r.Winner = &w
	}
	for i, p := range h.state.players.Players() {
		r.Players = append(r.Players, history.PlayerResult{
			Seat:     i,
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
		})
	}
	if err := h.opts.Results.Record(r); err != nil {
		h.log.Warn().Err(err).Str("game", r.GameID).Msg("could not record result")
	}
}
