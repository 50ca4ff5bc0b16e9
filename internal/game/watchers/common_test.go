package watchers

import (
	"testing"

	"github.com/gisim/gisim-go/internal/game/rules"
)

func TestDamageWatcher(t *testing.T) {
	watcher := NewDamageWatcher()

	if watcher.ConditionMet() {
		t.Fatal("watcher should not have condition met initially")
	}

	watcher.Watch(rules.NewRoundEndMsg(rules.PlayerOne, 1))
	if watcher.ConditionMet() {
		t.Fatal("round end must not trip the damage watcher")
	}

	watcher.Watch(rules.NewDealDamageMsg(
		rules.PlayerOne,
		rules.AttackSummon,
		rules.Attacker{Player: rules.PlayerOne, Position: rules.CharPosNone},
		[]rules.DamageTarget{{Player: rules.PlayerTwo, Position: rules.CharPosActive, Element: rules.ElementPyro, Value: 2}},
	))
	watcher.Watch(rules.NewDealDamageMsg(
		rules.PlayerTwo,
		rules.AttackSkill,
		rules.Attacker{Player: rules.PlayerTwo, Position: rules.CharPosActive},
		[]rules.DamageTarget{{Player: rules.PlayerOne, Position: rules.CharPosActive, Element: rules.ElementHydro, Value: 3}},
	))

	if !watcher.ConditionMet() {
		t.Fatal("watcher should have condition met after damage")
	}
	if got := watcher.GetReceived(rules.PlayerTwo); got != 2 {
		t.Fatalf("expected 2 damage to player two, got %d", got)
	}
	if got := watcher.GetReceived(rules.PlayerOne); got != 3 {
		t.Fatalf("expected 3 damage to player one, got %d", got)
	}
	if got := watcher.GetByAttackType(rules.AttackSummon); got != 2 {
		t.Fatalf("expected 2 summon damage, got %d", got)
	}

	watcher.Reset()
	if watcher.ConditionMet() || watcher.GetReceived(rules.PlayerTwo) != 0 {
		t.Fatal("expected reset to clear damage totals")
	}
}

func TestRoundEndWatcher(t *testing.T) {
	watcher := NewRoundEndWatcher()

	watcher.Watch(rules.NewTriggerSummonEffectMsg(rules.PlayerOne, true))
	if watcher.GetCount() != 0 {
		t.Fatalf("expected 0 rounds, got %d", watcher.GetCount())
	}

	watcher.Watch(rules.NewRoundEndMsg(rules.PlayerOne, 1))
	watcher.Watch(rules.NewRoundEndMsg(rules.PlayerTwo, 2))
	if watcher.GetCount() != 2 {
		t.Fatalf("expected 2 rounds, got %d", watcher.GetCount())
	}
	if watcher.GetLastRound() != 2 {
		t.Fatalf("expected last round 2, got %d", watcher.GetLastRound())
	}

	watcher.Reset()
	if watcher.ConditionMet() || watcher.GetCount() != 0 {
		t.Fatal("expected reset to clear round count")
	}
}
