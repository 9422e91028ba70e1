package session

import (
	"time"

	"deckrush/internal/game/clock"
	"deckrush/internal/session/message"
)

// gameClock holds the two repeating actions of a running game. Both are
// created together on start and nulled together on end, under the handler
// lock; a tick whose handle is no longer here returns without doing anything.
type gameClock struct {
	autoplay  clock.Handle
	countdown clock.Handle
}

func (h *GameHandler) startClock() {
	h.clock.autoplay = h.opts.Scheduler.Every(h.opts.PlayInterval, h.onAutoplayTick)
	h.clock.countdown = h.opts.Scheduler.Every(time.Second, h.onCountdownTick)
}

func (h *GameHandler) stopClock() {
	if h.clock.autoplay != nil {
		h.clock.autoplay.Stop()
	}
	if h.clock.countdown != nil {
		h.clock.countdown.Stop()
	}
	h.clock = gameClock{}
}

// onAutoplayTick plays the top card of every seated player, in seat order.
func (h *GameHandler) onAutoplayTick(handle clock.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle != h.clock.autoplay {
		return
	}

	for _, p := range h.state.players.Players() {
		c, ok := p.PlayTop(h.opts.Rand)
		if !ok {
			continue
		}
		h.broadcastEncoded(message.CreateCardPlayed(p.ID, c))
	}
	h.broadcastState()
}

func (h *GameHandler) onCountdownTick(handle clock.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle != h.clock.countdown {
		return
	}

	h.state.timeRemaining--
	if h.state.timeRemaining <= 0 {
		h.endGame(reasonTimeout)
		return
	}
	h.broadcastState()
}
