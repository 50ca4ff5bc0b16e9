package summon

import (
	"errors"
	"fmt"

	"github.com/gisim/gisim-go/internal/game/rules"
)

// Kind tags the concrete summon variants. The set is closed.
type Kind string

const (
	// KindAttack deals fixed elemental damage each time it fires.
	KindAttack Kind = "ATTACK"
)

// ParseKind converts a catalogue value into a Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case KindAttack:
		return KindAttack, nil
	default:
		return "", fmt.Errorf("unknown summon kind %q", value)
	}
}

// ErrInvalidSummon is returned when a summon is built with an impossible configuration.
var ErrInvalidSummon = errors.New("invalid summon configuration")

// Summon is a reactive entity living in a player's summon zone.
type Summon interface {
	rules.Entity

	Name() string
	Kind() Kind
	Usages() int
	// Position is the slot in the summon zone, -1 until placed.
	Position() int

	place(position int)
}

// base carries the lifecycle state shared by every summon variant. It is only
// mutated by the owning summon's reaction and by zone placement.
type base struct {
	id       rules.EntityID
	name     string
	kind     Kind
	usages   int
	player   rules.PlayerID
	position int
	active   bool
}

func newBase(kind Kind, name string, player rules.PlayerID, usages int) (base, error) {
	if usages < 1 {
		return base{}, fmt.Errorf("%w: %s needs at least one usage, got %d", ErrInvalidSummon, name, usages)
	}
	return base{
		id:       rules.NewEntityID(),
		name:     name,
		kind:     kind,
		usages:   usages,
		player:   player,
		position: -1,
		active:   true,
	}, nil
}

// ID implements rules.Entity.
func (b *base) ID() rules.EntityID { return b.id }

// Owner implements rules.Entity.
func (b *base) Owner() rules.PlayerID { return b.player }

// Active implements rules.Entity.
func (b *base) Active() bool { return b.active }

// Name returns the summon's display name.
func (b *base) Name() string { return b.name }

// Kind returns the summon variant.
func (b *base) Kind() Kind { return b.kind }

// Usages returns the remaining number of uses.
func (b *base) Usages() int { return b.usages }

// Position returns the zone slot.
func (b *base) Position() int { return b.position }

func (b *base) place(position int) {
	b.position = position
}

// checkConsume validates a use can be spent without changing anything.
// Callers skip inactive summons before reaching it.
func (b *base) checkConsume() error {
	if b.usages <= 0 {
		return fmt.Errorf("%w: %s has no usages left", rules.ErrInvalidTransition, b.name)
	}
	return nil
}

// consume spends one use. Reaching zero deactivates the summon for good.
func (b *base) consume() {
	b.usages--
	if b.usages == 0 {
		b.active = false
	}
}

func (b *base) snapshot() rules.Snapshot {
	return rules.Snapshot{
		Kind:     string(b.kind),
		Name:     b.name,
		Player:   b.player,
		Position: b.position,
		Usages:   b.usages,
		Active:   b.active,
	}
}
