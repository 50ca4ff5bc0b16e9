package rules

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MessageType indicates the kind of an in-flight game message.
type MessageType string

const (
	// MsgTriggerSummonEffect asks summons to fire their effect.
	MsgTriggerSummonEffect MessageType = "TRIGGER_SUMMON_EFFECT"
	// MsgRoundEnd announces the end of a round.
	MsgRoundEnd MessageType = "ROUND_END"
	// MsgDealDamage carries damage from an attacker to one or more targets.
	MsgDealDamage MessageType = "DEAL_DAMAGE"
)

// Priority ranks pending messages. Lower values resolve first.
type Priority int

const (
	PriorityImmediate Priority = iota
	PriorityHPChanging
	PriorityGeneralEffect
	PriorityPlayerAction
	PriorityRoundStatus
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityImmediate:
		return "IMMEDIATE"
	case PriorityHPChanging:
		return "HP_CHANGING"
	case PriorityGeneralEffect:
		return "GENERAL_EFFECT"
	case PriorityPlayerAction:
		return "PLAYER_ACTION"
	case PriorityRoundStatus:
		return "ROUND_STATUS"
	default:
		return fmt.Sprintf("PRIORITY(%d)", int(p))
	}
}

// EntityID is an opaque identity token for a reactive entity.
// It is comparable but carries no ordering.
type EntityID struct {
	token uuid.UUID
}

// NewEntityID generates a fresh identity.
func NewEntityID() EntityID {
	return EntityID{token: uuid.New()}
}

// IsZero reports whether the identity was never generated.
func (id EntityID) IsZero() bool {
	return id.token == uuid.Nil
}

// String returns the token for logging.
func (id EntityID) String() string {
	return id.token.String()
}

// Message is a pending game event. The set of implementations is closed:
// TriggerSummonEffectMsg, RoundEndMsg and DealDamageMsg.
type Message interface {
	Type() MessageType
	Header() *MessageHeader
	// Summary renders the payload deterministically, without identifiers.
	Summary() string
	sealed()
}

// MessageHeader holds the fields shared by every message. The priority is
// fixed at construction because the queue orders on it; only the response
// list grows afterwards.
type MessageHeader struct {
	ID     string
	Sender PlayerID

	priority  Priority
	responded []EntityID
}

// MessageOption customises a message at construction time.
type MessageOption func(*MessageHeader)

// WithPriority overrides the default priority of a message kind.
func WithPriority(priority Priority) MessageOption {
	return func(h *MessageHeader) {
		h.priority = priority
	}
}

// WithID sets an explicit message ID instead of a generated one.
func WithID(id string) MessageOption {
	return func(h *MessageHeader) {
		if id != "" {
			h.ID = id
		}
	}
}

func newHeader(sender PlayerID, priority Priority, opts []MessageOption) MessageHeader {
	h := MessageHeader{
		ID:        uuid.NewString(),
		Sender:    sender,
		priority:  priority,
		responded: make([]EntityID, 0, 4),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Header returns the shared header.
func (h *MessageHeader) Header() *MessageHeader {
	return h
}

func (h *MessageHeader) sealed() {}

// Priority returns the resolution rank set at construction.
func (h *MessageHeader) Priority() Priority {
	return h.priority
}

// HasResponded reports whether the entity already reacted to this message.
func (h *MessageHeader) HasResponded(id EntityID) bool {
	for _, existing := range h.responded {
		if existing == id {
			return true
		}
	}
	return false
}

// MarkResponded appends the entity to the response list.
func (h *MessageHeader) MarkResponded(id EntityID) error {
	if h.HasResponded(id) {
		return fmt.Errorf("%w: entity %s on message %s", ErrAlreadyResponded, id, h.ID)
	}
	h.responded = append(h.responded, id)
	return nil
}

// RespondedEntities returns a copy of the response list in marking order.
func (h *MessageHeader) RespondedEntities() []EntityID {
	cpy := make([]EntityID, len(h.responded))
	copy(cpy, h.responded)
	return cpy
}

// ResponseCount returns how many entities reacted to the message.
func (h *MessageHeader) ResponseCount() int {
	return len(h.responded)
}

// TriggerSummonEffectMsg asks summons to fire. ConsumeUsage controls whether
// firing spends one of the summon's remaining uses.
type TriggerSummonEffectMsg struct {
	MessageHeader
	ConsumeUsage bool
}

// NewTriggerSummonEffectMsg creates a trigger message at general-effect priority.
func NewTriggerSummonEffectMsg(sender PlayerID, consumeUsage bool, opts ...MessageOption) *TriggerSummonEffectMsg {
	return &TriggerSummonEffectMsg{
		MessageHeader: newHeader(sender, PriorityGeneralEffect, opts),
		ConsumeUsage:  consumeUsage,
	}
}

// Type implements Message.
func (m *TriggerSummonEffectMsg) Type() MessageType { return MsgTriggerSummonEffect }

// Summary implements Message.
func (m *TriggerSummonEffectMsg) Summary() string {
	return fmt.Sprintf("%s sender=%s consume=%t", m.Type(), m.Sender, m.ConsumeUsage)
}

// RoundEndMsg announces the end of a round.
type RoundEndMsg struct {
	MessageHeader
	Round int
}

// NewRoundEndMsg creates a round end message at round-status priority.
func NewRoundEndMsg(sender PlayerID, round int, opts ...MessageOption) *RoundEndMsg {
	return &RoundEndMsg{
		MessageHeader: newHeader(sender, PriorityRoundStatus, opts),
		Round:         round,
	}
}

// Type implements Message.
func (m *RoundEndMsg) Type() MessageType { return MsgRoundEnd }

// Summary implements Message.
func (m *RoundEndMsg) Summary() string {
	return fmt.Sprintf("%s sender=%s round=%d", m.Type(), m.Sender, m.Round)
}

// Attacker identifies the side and slot a damage event comes from.
type Attacker struct {
	Player   PlayerID
	Position CharPos
}

// DamageTarget is one recipient of a damage event.
type DamageTarget struct {
	Player   PlayerID
	Position CharPos
	Element  ElementType
	Value    int
}

// DealDamageMsg is the normalized damage event. Damage math is applied by the
// recipients, not by the sender.
type DealDamageMsg struct {
	MessageHeader
	AttackType AttackType
	Attacker   Attacker
	Targets    []DamageTarget
}

// NewDealDamageMsg creates a damage message at HP-changing priority.
func NewDealDamageMsg(sender PlayerID, attackType AttackType, attacker Attacker, targets []DamageTarget, opts ...MessageOption) *DealDamageMsg {
	cpy := make([]DamageTarget, len(targets))
	copy(cpy, targets)
	return &DealDamageMsg{
		MessageHeader: newHeader(sender, PriorityHPChanging, opts),
		AttackType:    attackType,
		Attacker:      attacker,
		Targets:       cpy,
	}
}

// Type implements Message.
func (m *DealDamageMsg) Type() MessageType { return MsgDealDamage }

// Summary implements Message.
func (m *DealDamageMsg) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s sender=%s type=%s attacker=%s/%s", m.Type(), m.Sender, m.AttackType, m.Attacker.Player, m.Attacker.Position)
	for _, t := range m.Targets {
		fmt.Fprintf(&b, " target=%s/%s/%s/%d", t.Player, t.Position, t.Element, t.Value)
	}
	return b.String()
}
