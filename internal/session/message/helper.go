package message

import (
	"encoding/json"
	"fmt"
	"strings"

	"deckrush/internal/network"
)

// MessageSender is anything that accepts outbound messages.
type MessageSender interface {
	Deliver(msg network.Message) bool
}

// Broadcast delivers msg to every sender and returns how many accepted it.
func Broadcast[S MessageSender](senders []S, msg network.Message) int {
	n := 0
	for _, s := range senders {
		if s.Deliver(msg) {
			n++
		}
	}
	return n
}

// DecodeString reads a payload sent either as a bare JSON string or as an
// object holding the value under field.
func DecodeString(msg network.Message, field string) (string, error) {
	if len(msg.Payload) == 0 {
		return "", fmt.Errorf("message %s has no payload", msg.Type)
	}

	var s string
	if err := json.Unmarshal(msg.Payload, &s); err == nil {
		return strings.TrimSpace(s), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg.Payload, &obj); err != nil {
		return "", fmt.Errorf("invalid %s payload: %w", msg.Type, err)
	}
	raw, ok := obj[field]
	if !ok {
		return "", fmt.Errorf("invalid %s payload: '%s' field is required", msg.Type, field)
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("invalid %s payload: '%s' must be a string", msg.Type, field)
	}
	return strings.TrimSpace(s), nil
}
