package watchers

import (
	"github.com/gisim/gisim-go/internal/game/rules"
)

// DamageWatcher totals damage sent to each player by retired DealDamage messages
type DamageWatcher struct {
	*rules.BaseWatcher
	received map[rules.PlayerID]int
	byAttack map[rules.AttackType]int
}

// NewDamageWatcher creates a new damage watcher
func NewDamageWatcher() *DamageWatcher {
	w := &DamageWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		received:    make(map[rules.PlayerID]int),
		byAttack:    make(map[rules.AttackType]int),
	}
	w.SetKey("DamageWatcher")
	return w
}

// Watch implements the Watcher interface
func (w *DamageWatcher) Watch(msg rules.Message) {
	damage, ok := msg.(*rules.DealDamageMsg)
	if !ok {
		return
	}
	for _, target := range damage.Targets {
		w.received[target.Player] += target.Value
		w.byAttack[damage.AttackType] += target.Value
	}
	w.SetCondition(true)
}

// Reset clears the watcher's state
func (w *DamageWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.received = make(map[rules.PlayerID]int)
	w.byAttack = make(map[rules.AttackType]int)
}

// GetReceived returns the damage sent to a player
func (w *DamageWatcher) GetReceived(player rules.PlayerID) int {
	return w.received[player]
}

// GetByAttackType returns the damage sent by a given attack type
func (w *DamageWatcher) GetByAttackType(attackType rules.AttackType) int {
	return w.byAttack[attackType]
}

// RoundEndWatcher counts retired RoundEnd messages and remembers the last round seen
type RoundEndWatcher struct {
	*rules.BaseWatcher
	count     int
	lastRound int
}

// NewRoundEndWatcher creates a new round end watcher
func NewRoundEndWatcher() *RoundEndWatcher {
	w := &RoundEndWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
	}
	w.SetKey("RoundEndWatcher")
	return w
}

// Watch implements the Watcher interface
func (w *RoundEndWatcher) Watch(msg rules.Message) {
	roundEnd, ok := msg.(*rules.RoundEndMsg)
	if !ok {
		return
	}
	w.count++
	w.lastRound = roundEnd.Round
	w.SetCondition(true)
}

// Reset clears the watcher's state
func (w *RoundEndWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.count = 0
	w.lastRound = 0
}

// GetCount returns how many rounds ended
func (w *RoundEndWatcher) GetCount() int {
	return w.count
}

// GetLastRound returns the round number of the latest RoundEnd
func (w *RoundEndWatcher) GetLastRound() int {
	return w.lastRound
}
