package summon

import (
	"errors"
	"fmt"

	"github.com/gisim/gisim-go/internal/game/rules"
	"go.uber.org/zap"
)

// DefaultZoneCapacity is the number of summons a player may have out at once
const DefaultZoneCapacity = 4

var (
	// ErrZoneFull is returned when adding to a zone with no free slot
	ErrZoneFull = errors.New("summon zone full")
	// ErrWrongOwner is returned when a summon is added to another player's zone
	ErrWrongOwner = errors.New("summon belongs to another player")
)

// Zone is one player's summon zone. Positions follow arrival order
type Zone struct {
	player   rules.PlayerID
	capacity int
	summons  []Summon
	logger   *zap.Logger
}

// NewZone creates an empty zone for a player
func NewZone(player rules.PlayerID, capacity int, logger *zap.Logger) *Zone {
	if logger == nil {
		logger = zap.NewNop()
	}
	if capacity <= 0 {
		capacity = DefaultZoneCapacity
	}
	return &Zone{
		player:   player,
		capacity: capacity,
		summons:  make([]Summon, 0, capacity),
		logger:   logger,
	}
}

func (z *Zone) Player() rules.PlayerID { return z.player }

// Add places a summon in the next free slot
func (z *Zone) Add(s Summon) error {
	if s == nil {
		return fmt.Errorf("%w: nil summon", ErrInvalidSummon)
	}
	if s.Owner() != z.player {
		return fmt.Errorf("%w: %s is owned by %s, zone is %s", ErrWrongOwner, s.Name(), s.Owner(), z.player)
	}
	if len(z.summons) >= z.capacity {
		return fmt.Errorf("%w: %s has %d summons", ErrZoneFull, z.player, len(z.summons))
	}
	s.place(len(z.summons))
	z.summons = append(z.summons, s)

	z.logger.Debug("summon added",
		zap.String("player", z.player.String()),
		zap.String("summon", s.Name()),
		zap.Int("position", s.Position()),
		zap.Int("usages", s.Usages()))
	return nil
}

// Summons returns the zone's summons in position order
func (z *Zone) Summons() []Summon {
	cpy := make([]Summon, len(z.summons))
	copy(cpy, z.summons)
	return cpy
}

func (z *Zone) Len() int { return len(z.summons) }

// Prune removes inactive summons and re-packs positions. It returns the removed summons
func (z *Zone) Prune() []Summon {
	var removed []Summon
	kept := z.summons[:0]
	for _, s := range z.summons {
		if s.Active() {
			s.place(len(kept))
			kept = append(kept, s)
			continue
		}
		removed = append(removed, s)
		z.logger.Debug("summon removed",
			zap.String("player", z.player.String()),
			zap.String("summon", s.Name()))
	}
	for i := len(kept); i < len(z.summons); i++ {
		z.summons[i] = nil
	}
	z.summons = kept
	return removed
}

// Board holds both players' summon zones
type Board struct {
	zones map[rules.PlayerID]*Zone
	first rules.PlayerID
}

// NewBoard creates a board with an empty zone per player. Entities are offered
// messages starting with the first player's zone.
func NewBoard(first rules.PlayerID, capacity int, logger *zap.Logger) *Board {
	return &Board{
		zones: map[rules.PlayerID]*Zone{
			rules.PlayerOne: NewZone(rules.PlayerOne, capacity, logger),
			rules.PlayerTwo: NewZone(rules.PlayerTwo, capacity, logger),
		},
		first: first,
	}
}

func (b *Board) Zone(player rules.PlayerID) *Zone {
	return b.zones[player]
}

// Add places a summon in its owner's zone
func (b *Board) Add(s Summon) error {
	if s == nil {
		return fmt.Errorf("%w: nil summon", ErrInvalidSummon)
	}
	zone, ok := b.zones[s.Owner()]
	if !ok {
		return fmt.Errorf("%w: no zone for %s", ErrWrongOwner, s.Owner())
	}
	return zone.Add(s)
}

// SetFirstPlayer changes which zone is offered messages first
func (b *Board) SetFirstPlayer(player rules.PlayerID) {
	b.first = player
}

// Entities returns the dispatch order: the first player's summons by position,
// then the opponent's.
func (b *Board) Entities() []rules.Entity {
	out := make([]rules.Entity, 0, b.zones[b.first].Len()+b.zones[b.first.Opponent()].Len())
	for _, player := range []rules.PlayerID{b.first, b.first.Opponent()} {
		for _, s := range b.zones[player].summons {
			out = append(out, s)
		}
	}
	return out
}

// Prune removes inactive summons from both zones and returns how many were removed
func (b *Board) Prune() int {
	removed := 0
	for _, player := range []rules.PlayerID{b.first, b.first.Opponent()} {
		removed += len(b.zones[player].Prune())
	}
	return removed
}
