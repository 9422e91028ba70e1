package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"deckrush/internal/network"
)

func TestDecodeString(t *testing.T) {
	msg := func(payload string) network.Message {
		return network.Message{Type: TypePlayerJoin, Payload: json.RawMessage(payload)}
	}

	s, err := DecodeString(msg(`"  Alice "`), "name")
	require.NoError(t, err)
	require.Equal(t, "Alice", s)

	s, err = DecodeString(msg(`{"name":"Bob"}`), "name")
	require.NoError(t, err)
	require.Equal(t, "Bob", s)

	s, err = DecodeString(msg(`{"name":""}`), "name")
	require.NoError(t, err)
	require.Equal(t, "", s)

	_, err = DecodeString(network.Message{Type: TypePlayerJoin}, "name")
	require.Error(t, err)
	_, err = DecodeString(msg(`{"other":"x"}`), "name")
	require.Error(t, err)
	_, err = DecodeString(msg(`{"name":3}`), "name")
	require.Error(t, err)
	_, err = DecodeString(msg(`42`), "name")
	require.Error(t, err)
}

func TestBroadcast(t *testing.T) {
	a := network.NewDetachedClient("a", 1)
	b := network.NewDetachedClient("b", 0)

	n := Broadcast([]*network.Client{a, b}, CreateGameStarted())
	require.Equal(t, 1, n)
	require.Equal(t, TypeGameStarted, (<-a.Outbox()).Type)
}

func TestCreateGameEnded(t *testing.T) {
	msg, err := CreateGameEnded(nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"winner":null}`, string(msg.Payload))

	winner := "p1"
	msg, err = CreateGameEnded(&winner)
	require.NoError(t, err)
	require.JSONEq(t, `{"winner":"p1"}`, string(msg.Payload))
}
