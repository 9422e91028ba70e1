package events

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// NATSPublisher publishes events on "<prefix>.<kind>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	log    zerolog.Logger
}

// Connect dials url. The connection reconnects forever; publishes made while
// disconnected are buffered by the client library.
func Connect(url, prefix string, log zerolog.Logger) (*NATSPublisher, error) {
	log = log.With().Str("component", "events").Logger()

	conn, err := nats.Connect(url,
		nats.Name("deckrush"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}

	log.Info().Str("url", conn.ConnectedUrl()).Str("prefix", prefix).Msg("publishing game events")
	return &NATSPublisher{conn: conn, prefix: prefix, log: log}, nil
}

func Subject(prefix string, kind Kind) string {
	if prefix == "" {
		return string(kind)
	}
	return prefix + "." + string(kind)
}

func (p *NATSPublisher) Publish(e Event) error {
	data, err := e.Encode()
	if err != nil {
		return err
	}
	if err := p.conn.Publish(Subject(p.prefix, e.Kind), data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", e.Kind, err)
	}
	return nil
}

// Check reports an error while the connection is down.
func (p *NATSPublisher) Check() error {
	if !p.conn.IsConnected() {
		return fmt.Errorf("nats connection status: %s", p.conn.Status())
	}
	return nil
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Warn().Err(err).Msg("nats drain failed")
	}
}
