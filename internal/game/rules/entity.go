package rules

// Entity is a reactive game participant. Summons implement it here; characters
// and statuses are siblings owned by the surrounding rules layer.
type Entity interface {
	// ID returns the identity used for response tracking.
	ID() EntityID

	// Owner returns the player the entity belongs to.
	Owner() PlayerID

	// Active reports whether the entity may still react. Once false it stays false.
	Active() bool

	// React inspects the head of the queue and reacts to it at most once.
	// It may push follow-up messages, mutate the entity's own state and mark
	// the head as responded. It returns true when a reaction fired.
	// An error means nothing was committed.
	React(q *MessageQueue) (bool, error)

	// Encode returns a read-only projection of the entity's persistent fields.
	Encode() Snapshot
}

// Snapshot is the serializable view of an entity. It never includes the
// entity's identity.
type Snapshot struct {
	Kind          string      `json:"kind" yaml:"kind"`
	Name          string      `json:"name" yaml:"name"`
	Player        PlayerID    `json:"player_id" yaml:"player_id"`
	Position      int         `json:"position" yaml:"position"`
	Usages        int         `json:"usages" yaml:"usages"`
	Active        bool        `json:"active" yaml:"active"`
	DamageElement ElementType `json:"damage_element,omitempty" yaml:"damage_element,omitempty"`
	DamageValue   int         `json:"damage_value,omitempty" yaml:"damage_value,omitempty"`
}
