package network

import (
	"context"

	"github.com/rs/zerolog"
)

type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e roteia eventos para o handler.
// Todos os campos abaixo são acessados apenas pela goroutine que executa Run.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	incoming   chan clientMessage
	done       chan struct{}

	handler EventHandler
	log     zerolog.Logger
}

// NewHub cria, inicializa e retorna um novo Hub.
func NewHub(handler EventHandler, log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		done:       make(chan struct{}),
		handler:    handler,
		log:        log.With().Str("component", "hub").Logger(),
	}
}

// Run processes connects, disconnects and messages until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info().Str("client", client.id).Int("clients", len(h.clients)).Msg("client connected")
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Sinal para a goroutine writeLoop daquele cliente parar.
				client.close()
				h.log.Info().Str("client", client.id).Int("clients", len(h.clients)).Msg("client disconnected")
				h.handler.OnDisconnect(client)
			}

		case clientMsg := <-h.incoming:
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)

		case <-ctx.Done():
			for client := range h.clients {
				client.close()
			}
			h.log.Info().Msg("hub stopped")
			return
		}
	}
}

// submit hands an event to Run. It returns false once the hub has stopped.
func submit[T any](h *Hub, ch chan T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-h.done:
		return false
	}
}
