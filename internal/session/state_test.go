package session

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"deckrush/internal/game/card"
)

func newTestState(t *testing.T) (*GameState, *rand.Rand, card.IDGenerator) {
	t.Helper()
	r := rand.New(rand.NewPCG(5, 8))
	ids := &card.SequenceGenerator{Prefix: "s"}
	s, err := newGameState("g", 3, 60, r, ids)
	require.NoError(t, err)
	return s, r, ids
}

func TestPhase(t *testing.T) {
	s, r, ids := newTestState(t)
	require.Equal(t, PhaseLobby, s.Phase())

	_, err := s.players.Join("a", "A", false, r, ids)
	require.NoError(t, err)
	require.Equal(t, PhaseLobby, s.Phase())

	_, err = s.players.Join("b", "B", false, r, ids)
	require.NoError(t, err)
	require.Equal(t, PhaseReady, s.Phase())

	s.started = true
	require.Equal(t, PhasePlaying, s.Phase())

	s.started, s.ended = false, true
	require.Equal(t, PhaseEnded, s.Phase())
}

func TestRegistry(t *testing.T) {
	s, r, ids := newTestState(t)

	_, err := s.players.Join("a", "A", true, r, ids)
	require.ErrorIs(t, err, ErrGameFull)

	_, err = s.players.Join("a", "A", false, r, ids)
	require.NoError(t, err)
	_, err = s.players.Join("a", "A", false, r, ids)
	require.ErrorIs(t, err, ErrAlreadySeated)

	_, err = s.players.Join("b", "B", false, r, ids)
	require.NoError(t, err)
	_, err = s.players.Join("c", "C", false, r, ids)
	require.ErrorIs(t, err, ErrGameFull)

	require.True(t, s.players.Leave("a"))
	require.False(t, s.players.Leave("a"))
	require.Equal(t, 1, s.players.Count())
	require.Equal(t, "b", s.players.Players()[0].ID)
}

func TestPurchaseChecks(t *testing.T) {
	s, r, ids := newTestState(t)
	_, err := s.players.Join("a", "A", false, r, ids)
	require.NoError(t, err)
	target := s.shop.Cards()[0]

	_, err = s.purchase("a", target.ID, ids)
	require.ErrorIs(t, err, ErrNotStarted)

	s.started = true
	_, err = s.purchase("x", target.ID, ids)
	require.ErrorIs(t, err, ErrUnknownPlayer)
	_, err = s.purchase("a", "missing", ids)
	require.ErrorIs(t, err, ErrUnknownCard)
	_, err = s.purchase("a", target.ID, ids)
	require.ErrorIs(t, err, ErrInsufficientPoints)

	p := s.players.Find("a")
	p.Score = target.Cost
	bought, err := s.purchase("a", target.ID, ids)
	require.NoError(t, err)
	require.Equal(t, 0, p.Score)
	require.Equal(t, target.Value, bought.Added.Value)
	require.Equal(t, bought.Replacement, s.shop.Cards()[0])
	require.Equal(t, 11, p.Deck().Size())
}

func TestSnapshotIsIndependent(t *testing.T) {
	s, r, ids := newTestState(t)
	_, err := s.players.Join("a", "A", false, r, ids)
	require.NoError(t, err)
	winner := "a"
	s.winner = &winner

	snap := s.Snapshot()
	snap.Players[0].Deck[0].Value = 999
	snap.ShopCards[0].Cost = 999
	*snap.Winner = "b"

	again := s.Snapshot()
	require.NotEqual(t, 999, again.Players[0].Deck[0].Value)
	require.NotEqual(t, 999, again.ShopCards[0].Cost)
	require.Equal(t, "a", *again.Winner)
}
