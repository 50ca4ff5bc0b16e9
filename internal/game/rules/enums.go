package rules

import (
	"fmt"
	"strings"
)

// PlayerID identifies one of the two players at the table
type PlayerID int

const (
	// PlayerOne moves first in the opening round
	PlayerOne PlayerID = iota
	// PlayerTwo is PlayerOne's opponent
	PlayerTwo
)

// Opponent returns the other player
func (p PlayerID) Opponent() PlayerID {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// String returns the string representation of the player
func (p PlayerID) String() string {
	switch p {
	case PlayerOne:
		return "PLAYER1"
	case PlayerTwo:
		return "PLAYER2"
	default:
		return "UNKNOWN"
	}
}

// ParsePlayerID converts a configuration value into a PlayerID
func ParsePlayerID(value string) (PlayerID, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "PLAYER1", "1":
		return PlayerOne, nil
	case "PLAYER2", "2":
		return PlayerTwo, nil
	default:
		return PlayerOne, fmt.Errorf("unknown player %q", value)
	}
}

// CharPos addresses a character slot on a player's side
type CharPos int

const (
	// CharPosNone is used by attackers that do not stand in a character slot, such as summons
	CharPosNone CharPos = iota
	// CharPosActive resolves to whichever character is currently active
	CharPosActive
	// CharPosFirst is the first character slot
	CharPosFirst
	// CharPosSecond is the second character slot
	CharPosSecond
	// CharPosThird is the third character slot
	CharPosThird
)

// String returns the string representation of the position
func (c CharPos) String() string {
	switch c {
	case CharPosNone:
		return "NONE"
	case CharPosActive:
		return "ACTIVE"
	case CharPosFirst:
		return "FIRST"
	case CharPosSecond:
		return "SECOND"
	case CharPosThird:
		return "THIRD"
	default:
		return "UNKNOWN"
	}
}

// ElementType is the elemental type carried by damage
type ElementType string

const (
	ElementPhysical ElementType = "PHYSICAL"
	ElementCryo     ElementType = "CRYO"
	ElementHydro    ElementType = "HYDRO"
	ElementPyro     ElementType = "PYRO"
	ElementElectro  ElementType = "ELECTRO"
	ElementAnemo    ElementType = "ANEMO"
	ElementGeo      ElementType = "GEO"
	ElementDendro   ElementType = "DENDRO"
	ElementPiercing ElementType = "PIERCING"
)

var elementTypes = map[ElementType]struct{}{
	ElementPhysical: {},
	ElementCryo:     {},
	ElementHydro:    {},
	ElementPyro:     {},
	ElementElectro:  {},
	ElementAnemo:    {},
	ElementGeo:      {},
	ElementDendro:   {},
	ElementPiercing: {},
}

// ParseElementType converts a case-insensitive name into an ElementType
func ParseElementType(value string) (ElementType, error) {
	et := ElementType(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := elementTypes[et]; !ok {
		return "", fmt.Errorf("unknown element type %q", value)
	}
	return et, nil
}

// AttackType describes where a damage event originated
type AttackType string

const (
	AttackNormal AttackType = "NORMAL_ATTACK"
	AttackSkill  AttackType = "ELEMENTAL_SKILL"
	AttackBurst  AttackType = "ELEMENTAL_BURST"
	AttackSummon AttackType = "SUMMON"
	AttackStatus AttackType = "STATUS"
)
