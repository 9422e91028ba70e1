package network

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"
)

const (
	// Tempo para aguardar por uma escrita na conexão.
	writeWait = 10 * time.Second

	// Tempo máximo para aguardar por uma resposta de pong do cliente.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 256
)

// Client is one connected websocket peer.
type Client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	log  zerolog.Logger

	mu     deadlock.Mutex
	send   chan Message
	closed bool
}

func newClient(conn *websocket.Conn, hub *Hub) *Client {
	id := uuid.NewString()
	return &Client{
		id:   id,
		conn: conn,
		hub:  hub,
		log:  hub.log.With().Str("client", id).Logger(),
		send: make(chan Message, sendBuffer),
	}
}

// NewDetachedClient returns a client with no connection. Messages delivered
// to it are readable from Outbox. Used to drive handlers without a socket.
func NewDetachedClient(id string, buffer int) *Client {
	return &Client{
		id:   id,
		log:  zerolog.Nop(),
		send: make(chan Message, buffer),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Deliver queues msg without blocking. It returns false when the client is
// gone or its queue is full, in which case the message is dropped.
func (c *Client) Deliver(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		c.log.Warn().Str("type", msg.Type).Msg("send queue full, dropping message")
		return false
	}
}

// Outbox exposes queued messages for detached clients.
func (c *Client) Outbox() <-chan Message {
	return c.send
}

// close stops the write loop. Safe to call more than once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readLoop() {
	defer func() {
		submit(c.hub, c.hub.unregister, c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn().Err(err).Msg("unexpected close")
			}
			break
		}

		if !submit(c.hub, c.hub.incoming, clientMessage{client: c, msg: msg}) {
			break
		}
	}
}

// writeLoop bombeia mensagens do canal 'send' do cliente para a conexão WebSocket.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Warn().Err(err).Msg("write failed")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
