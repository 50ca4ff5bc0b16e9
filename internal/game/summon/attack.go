package summon

import (
	"fmt"

	"github.com/gisim/gisim-go/internal/game/rules"
)

// AttackSummon deals a fixed amount of elemental damage to the opposing active
// character whenever summon effects trigger and at the end of every round.
type AttackSummon struct {
	base
	element rules.ElementType
	damage  int
}

// NewAttackSummon creates an active, unplaced attacking summon.
func NewAttackSummon(name string, player rules.PlayerID, usages int, element rules.ElementType, damage int) (*AttackSummon, error) {
	if damage < 0 {
		return nil, fmt.Errorf("%w: %s has negative damage %d", ErrInvalidSummon, name, damage)
	}
	if element == "" {
		return nil, fmt.Errorf("%w: %s has no damage element", ErrInvalidSummon, name)
	}
	b, err := newBase(KindAttack, name, player, usages)
	if err != nil {
		return nil, err
	}
	return &AttackSummon{
		base:    b,
		element: element,
		damage:  damage,
	}, nil
}

// Element returns the damage element.
func (s *AttackSummon) Element() rules.ElementType { return s.element }

// Damage returns the damage value.
func (s *AttackSummon) Damage() int { return s.damage }

// React implements rules.Entity.
func (s *AttackSummon) React(q *rules.MessageQueue) (bool, error) {
	if !s.active {
		return false, nil
	}
	msg, err := q.Peek()
	if err != nil {
		return false, err
	}
	header := msg.Header()
	if header.HasResponded(s.id) {
		return false, nil
	}

	var consume bool
	switch m := msg.(type) {
	case *rules.TriggerSummonEffectMsg:
		consume = m.ConsumeUsage
	case *rules.RoundEndMsg:
		consume = true
	default:
		return false, nil
	}

	if consume {
		if err := s.checkConsume(); err != nil {
			return false, err
		}
	}

	q.Push(s.attack())
	if consume {
		s.consume()
	}
	// HasResponded was checked above, so this cannot fail.
	_ = header.MarkResponded(s.id)
	return true, nil
}

func (s *AttackSummon) attack() *rules.DealDamageMsg {
	return rules.NewDealDamageMsg(
		s.player,
		rules.AttackSummon,
		rules.Attacker{Player: s.player, Position: rules.CharPosNone},
		[]rules.DamageTarget{{
			Player:   s.player.Opponent(),
			Position: rules.CharPosActive,
			Element:  s.element,
			Value:    s.damage,
		}},
	)
}

// Encode implements rules.Entity.
func (s *AttackSummon) Encode() rules.Snapshot {
	snap := s.snapshot()
	snap.DamageElement = s.element
	snap.DamageValue = s.damage
	return snap
}
