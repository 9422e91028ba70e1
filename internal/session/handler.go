package session

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"

	"deckrush/internal/events"
	"deckrush/internal/game/card"
	"deckrush/internal/game/clock"
	"deckrush/internal/game/shop"
	"deckrush/internal/history"
	"deckrush/internal/network"
	"deckrush/internal/session/message"
)

// CommandHandlerFunc handles one inbound command. It runs with the handler
// lock held.
type CommandHandlerFunc func(h *GameHandler, c *network.Client, msg network.Message)

// ResultRecorder receives every finished game.
type ResultRecorder interface {
	Record(r history.Result) error
}

type nopRecorder struct{}

func (nopRecorder) Record(history.Result) error { return nil }

// Options configures a GameHandler. Zero values take the defaults.
type Options struct {
	// Length of a game; timeRemaining starts at this many seconds.
	GameDuration time.Duration
	// Interval between autoplay ticks.
	PlayInterval time.Duration
	// Delay between the end of a game and the reset to an empty lobby.
	ResetDelay time.Duration
	ShopSize   int

	Rand      *rand.Rand
	IDs       card.IDGenerator
	Scheduler clock.Scheduler
	Publisher events.Publisher
	Results   ResultRecorder
	Logger    zerolog.Logger
	Now       func() time.Time
}

func (o *Options) setDefaults() {
	if o.GameDuration <= 0 {
		o.GameDuration = 60 * time.Second
	}
	if o.PlayInterval <= 0 {
		o.PlayInterval = time.Second
	}
	if o.ResetDelay <= 0 {
		o.ResetDelay = 5 * time.Second
	}
	if o.ShopSize <= 0 {
		o.ShopSize = shop.DefaultSize
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}
	if o.IDs == nil {
		o.IDs = card.UUIDGenerator{}
	}
	if o.Scheduler == nil {
		o.Scheduler = clock.RealScheduler{}
	}
	if o.Publisher == nil {
		o.Publisher = events.Nop{}
	}
	if o.Results == nil {
		o.Results = nopRecorder{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// GameHandler is the lifecycle controller and the only writer of the game
// state. Hub callbacks and clock ticks all go through mu, and every message
// is queued before mu is released, so each connection sees events in the
// order the state changed.
type GameHandler struct {
	mu deadlock.Mutex

	opts  Options
	state *GameState
	conns map[string]*network.Client
	clock gameClock
	reset clock.Handle

	router map[string]CommandHandlerFunc
	log    zerolog.Logger
}

// NewGameHandler creates the game in its initial empty lobby.
func NewGameHandler(opts Options) (*GameHandler, error) {
	opts.setDefaults()

	h := &GameHandler{
		opts:   opts,
		conns:  make(map[string]*network.Client),
		router: make(map[string]CommandHandlerFunc),
		log:    opts.Logger.With().Str("component", "game").Logger(),
	}

	state, err := h.newState()
	if err != nil {
		return nil, err
	}
	h.state = state

	h.registerGameHandlers()
	return h, nil
}

func (h *GameHandler) timeLimit() int {
	return int(h.opts.GameDuration / time.Second)
}

func (h *GameHandler) newState() (*GameState, error) {
	return newGameState(uuid.NewString(), h.opts.ShopSize, h.timeLimit(), h.opts.Rand, h.opts.IDs)
}

// --- Implementação da Interface network.EventHandler ---

func (h *GameHandler) OnConnect(c *network.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[c.ID()] = c
	// Let the new connection render the table before it joins.
	h.sendState(c)
}

func (h *GameHandler) OnDisconnect(c *network.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.conns, c.ID())
	h.leave(c.ID())
}

func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c.ID()]; !ok {
		return
	}

	handler, found := h.router[msg.Type]
	if !found {
		h.log.Debug().Str("client", c.ID()).Str("type", msg.Type).Msg("ignoring unknown command")
		return
	}
	handler(h, c, msg)
}

// Snapshot returns the current state.
func (h *GameHandler) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Snapshot()
}

// Phase returns the current lifecycle phase.
func (h *GameHandler) Phase() Phase {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Phase()
}

// Shutdown cancels every scheduled action. The handler must not be used
// afterwards.
func (h *GameHandler) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopClock()
	if h.reset != nil {
		h.reset.Stop()
		h.reset = nil
	}
}

// --- envio ---

func (h *GameHandler) send(c *network.Client, msg network.Message) {
	if !c.Deliver(msg) {
		h.log.Debug().Str("client", c.ID()).Str("type", msg.Type).Msg("message not delivered")
	}
}

func (h *GameHandler) broadcast(msg network.Message) {
	clients := make([]*network.Client, 0, len(h.conns))
	for _, c := range h.conns {
		clients = append(clients, c)
	}
	if n := message.Broadcast(clients, msg); n < len(clients) {
		h.log.Debug().Str("type", msg.Type).Int("delivered", n).Int("clients", len(clients)).Msg("broadcast not fully delivered")
	}
}

func (h *GameHandler) stateMessage() (network.Message, bool) {
	msg, err := message.CreateGameState(h.state.Snapshot())
	if err != nil {
		h.log.Error().Err(err).Msg("could not encode state")
		return network.Message{}, false
	}
	return msg, true
}

func (h *GameHandler) sendState(c *network.Client) {
	if msg, ok := h.stateMessage(); ok {
		h.send(c, msg)
	}
}

func (h *GameHandler) broadcastState() {
	if msg, ok := h.stateMessage(); ok {
		h.broadcast(msg)
	}
}

func (h *GameHandler) broadcastEncoded(msg network.Message, err error) {
	if err != nil {
		h.log.Error().Err(err).Msg("could not encode event")
		return
	}
	h.broadcast(msg)
}
