package summon

import (
	"testing"

	"github.com/gisim/gisim-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mustSummon(t *testing.T, name string, player rules.PlayerID, usages int) *AttackSummon {
	t.Helper()
	s, err := NewAttackSummon(name, player, usages, rules.ElementHydro, 1)
	require.NoError(t, err)
	return s
}

func TestZoneAssignsPositions(t *testing.T) {
	zone := NewZone(rules.PlayerOne, 2, zap.NewNop())

	a := mustSummon(t, "A", rules.PlayerOne, 1)
	b := mustSummon(t, "B", rules.PlayerOne, 1)
	require.NoError(t, zone.Add(a))
	require.NoError(t, zone.Add(b))

	assert.Equal(t, 0, a.Position())
	assert.Equal(t, 1, b.Position())

	err := zone.Add(mustSummon(t, "C", rules.PlayerOne, 1))
	assert.ErrorIs(t, err, ErrZoneFull)
	assert.Equal(t, 2, zone.Len())
}

func TestZoneRejectsForeignSummon(t *testing.T) {
	zone := NewZone(rules.PlayerOne, 0, nil)
	err := zone.Add(mustSummon(t, "Foreign", rules.PlayerTwo, 1))
	assert.ErrorIs(t, err, ErrWrongOwner)
	assert.ErrorIs(t, zone.Add(nil), ErrInvalidSummon)
}

func TestZonePruneRepacksPositions(t *testing.T) {
	zone := NewZone(rules.PlayerOne, DefaultZoneCapacity, nil)
	a := mustSummon(t, "A", rules.PlayerOne, 2)
	b := mustSummon(t, "B", rules.PlayerOne, 1)
	c := mustSummon(t, "C", rules.PlayerOne, 2)
	for _, s := range []Summon{a, b, c} {
		require.NoError(t, zone.Add(s))
	}

	// Each summon gets its own queue so a pushed attack never displaces the round end.
	for _, s := range zone.Summons() {
		q := rules.NewMessageQueue()
		q.Push(rules.NewRoundEndMsg(rules.PlayerOne, 1))
		handled, err := s.React(q)
		require.NoError(t, err)
		require.True(t, handled)
	}
	require.False(t, b.Active())
	require.True(t, a.Active())
	require.True(t, c.Active())

	removed := zone.Prune()
	require.Len(t, removed, 1)
	assert.Same(t, b, removed[0])

	summons := zone.Summons()
	require.Len(t, summons, 2)
	assert.Same(t, a, summons[0])
	assert.Same(t, c, summons[1])
	assert.Equal(t, 0, a.Position())
	assert.Equal(t, 1, c.Position())
}

func TestBoardEntitiesOrder(t *testing.T) {
	board := NewBoard(rules.PlayerTwo, DefaultZoneCapacity, zap.NewNop())
	p1a := mustSummon(t, "P1A", rules.PlayerOne, 1)
	p1b := mustSummon(t, "P1B", rules.PlayerOne, 1)
	p2a := mustSummon(t, "P2A", rules.PlayerTwo, 1)
	for _, s := range []Summon{p1a, p2a, p1b} {
		require.NoError(t, board.Add(s))
	}

	entities := board.Entities()
	require.Len(t, entities, 3)
	assert.Equal(t, p2a.ID(), entities[0].ID())
	assert.Equal(t, p1a.ID(), entities[1].ID())
	assert.Equal(t, p1b.ID(), entities[2].ID())

	board.SetFirstPlayer(rules.PlayerOne)
	entities = board.Entities()
	assert.Equal(t, p1a.ID(), entities[0].ID())
	assert.Equal(t, p2a.ID(), entities[2].ID())
}

func TestBoardPrune(t *testing.T) {
	board := NewBoard(rules.PlayerOne, DefaultZoneCapacity, nil)
	short := mustSummon(t, "Short", rules.PlayerOne, 1)
	long := mustSummon(t, "Long", rules.PlayerTwo, 2)
	require.NoError(t, board.Add(short))
	require.NoError(t, board.Add(long))

	for _, e := range board.Entities() {
		q := rules.NewMessageQueue()
		q.Push(rules.NewRoundEndMsg(rules.PlayerOne, 1))
		_, err := e.React(q)
		require.NoError(t, err)
	}
	require.False(t, short.Active())
	require.True(t, long.Active())

	assert.Equal(t, 1, board.Prune())
	assert.Equal(t, 0, board.Zone(rules.PlayerOne).Len())
	assert.Equal(t, 1, board.Zone(rules.PlayerTwo).Len())
}
