package network

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Server upgrades HTTP requests to websocket clients of a Hub.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewServer creates the hub for handler. allowOrigins lists the Origin
// header values accepted on upgrade; "*" accepts any origin, and requests
// without an Origin header are always accepted.
func NewServer(handler EventHandler, allowOrigins []string, log zerolog.Logger) *Server {
	allowed := make(map[string]bool)
	for _, o := range allowOrigins {
		if o != "" {
			allowed[o] = true
		}
	}

	s := &Server{
		hub: NewHub(handler, log),
		log: log.With().Str("component", "ws").Logger(),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[origin]
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	return s
}

func (s *Server) Hub() *Hub {
	return s.hub
}

// ServeHTTP promove a conexão HTTP para uma conexão WebSocket persistente.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("upgrade failed")
		return
	}

	client := newClient(conn, s.hub)
	if !submit(s.hub, s.hub.register, client) {
		conn.Close()
		return
	}

	go client.writeLoop()
	go client.readLoop()
}
