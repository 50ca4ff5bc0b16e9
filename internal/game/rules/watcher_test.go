package rules

import "testing"

type countingWatcher struct {
	*BaseWatcher
	seen []MessageType
}

func newCountingWatcher(key string) *countingWatcher {
	w := &countingWatcher{BaseWatcher: NewBaseWatcher(WatcherScopeGame)}
	w.SetKey(key)
	return w
}

func (w *countingWatcher) Watch(msg Message) {
	w.seen = append(w.seen, msg.Type())
	w.SetCondition(true)
}

func (w *countingWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.seen = nil
}

func TestWatcherRegistryNotifiesInOrder(t *testing.T) {
	registry := NewWatcherRegistry()
	var order []string

	first := newCountingWatcher("first")
	second := newCountingWatcher("second")
	registry.AddWatcher(first)
	registry.AddWatcher(second)

	registry.NotifyWatchers(NewRoundEndMsg(PlayerOne, 1))

	for _, w := range registry.GetAllWatchers() {
		order = append(order, w.GetKey())
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected registration order: %v", order)
	}
	if len(first.seen) != 1 || len(second.seen) != 1 {
		t.Fatalf("expected both watchers notified once")
	}
	if !first.ConditionMet() {
		t.Fatalf("expected condition to be met")
	}

	registry.ResetWatchers()
	if first.ConditionMet() || len(first.seen) != 0 {
		t.Fatalf("expected reset to clear watcher state")
	}
}

func TestWatcherRegistryGeneratesKeyAndRemoves(t *testing.T) {
	registry := NewWatcherRegistry()
	w := newCountingWatcher("")
	registry.AddWatcher(w)

	if w.GetKey() == "" {
		t.Fatalf("expected generated key")
	}
	if registry.GetWatcher(w.GetKey()) == nil {
		t.Fatalf("expected watcher to be retrievable")
	}

	registry.RemoveWatcher(w.GetKey())
	if len(registry.GetAllWatchers()) != 0 {
		t.Fatalf("expected registry to be empty after removal")
	}
	registry.NotifyWatchers(NewRoundEndMsg(PlayerOne, 1))
	if len(w.seen) != 0 {
		t.Fatalf("removed watcher must not be notified")
	}
}

func TestWatcherRegistryReplacesSameKey(t *testing.T) {
	registry := NewWatcherRegistry()
	registry.AddWatcher(newCountingWatcher("dup"))
	replacement := newCountingWatcher("dup")
	registry.AddWatcher(replacement)

	all := registry.GetAllWatchers()
	if len(all) != 1 || all[0] != replacement {
		t.Fatalf("expected replacement watcher to be the only entry")
	}
}
