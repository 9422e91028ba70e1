package network

import (
	"encoding/json"
	"fmt"
)

// Message é o envelope padrão para toda a comunicação. Type roteia a
// mensagem; Payload fica cru até o handler decodificá-lo.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MaxMessageSize bounds a single inbound frame.
const MaxMessageSize = 64 * 1024

// NewMessage encodes payload into an envelope. A nil payload is omitted.
func NewMessage(msgType string, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode %s payload: %w", msgType, err)
	}
	return Message{Type: msgType, Payload: raw}, nil
}

// DecodePayload unmarshals the payload into v.
func (m Message) DecodePayload(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("message %s has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", m.Type, err)
	}
	return nil
}
