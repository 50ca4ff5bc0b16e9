package rules

import "fmt"

// WatcherScope defines the scope of a watcher's tracking
type WatcherScope int

const (
	// WatcherScopeGame tracks messages for the entire game
	WatcherScopeGame WatcherScope = iota
	// WatcherScopePlayer tracks messages concerning a specific player
	WatcherScopePlayer
)

// String returns the string representation of the watcher scope
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopePlayer:
		return "PLAYER"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes messages after they are retired from the queue. Watchers
// never react and never touch the queue.
type Watcher interface {
	// Watch is called once for every retired message
	Watch(msg Message)

	// Reset clears the watcher's condition and state
	Reset()

	// ConditionMet returns true if the condition this watcher tracks has been met
	ConditionMet() bool

	// GetScope returns the scope of this watcher
	GetScope() WatcherScope

	// GetKey returns a unique key for this watcher instance
	GetKey() string
}

// BaseWatcher provides a base implementation for watchers
type BaseWatcher struct {
	scope     WatcherScope
	condition bool
	key       string
}

// NewBaseWatcher creates a new base watcher with the specified scope
func NewBaseWatcher(scope WatcherScope) *BaseWatcher {
	return &BaseWatcher{
		scope: scope,
	}
}

// GetScope returns the watcher's scope
func (bw *BaseWatcher) GetScope() WatcherScope {
	return bw.scope
}

// ConditionMet returns whether the condition has been met
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// GetKey returns the unique key for this watcher
func (bw *BaseWatcher) GetKey() string {
	return bw.key
}

// SetKey sets the unique key for this watcher
func (bw *BaseWatcher) SetKey(key string) {
	bw.key = key
}

// WatcherRegistry holds watchers in registration order so notification order
// is reproducible.
type WatcherRegistry struct {
	order    []string
	watchers map[string]Watcher
}

// NewWatcherRegistry creates a new watcher registry
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
	}
}

// AddWatcher adds a watcher to the registry. A watcher with an existing key
// replaces the previous one in place.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}
	key := watcher.GetKey()
	if key == "" {
		key = fmt.Sprintf("watcher_%d", len(wr.order))
		if setter, ok := watcher.(interface{ SetKey(string) }); ok {
			setter.SetKey(key)
		}
	}
	if _, exists := wr.watchers[key]; !exists {
		wr.order = append(wr.order, key)
	}
	wr.watchers[key] = watcher
}

// RemoveWatcher removes a watcher from the registry
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	if _, ok := wr.watchers[key]; !ok {
		return
	}
	delete(wr.watchers, key)
	for i, k := range wr.order {
		if k == key {
			wr.order = append(wr.order[:i], wr.order[i+1:]...)
			break
		}
	}
}

// GetWatcher retrieves a watcher by key
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	return wr.watchers[key]
}

// GetAllWatchers returns all registered watchers in registration order
func (wr *WatcherRegistry) GetAllWatchers() []Watcher {
	result := make([]Watcher, 0, len(wr.order))
	for _, key := range wr.order {
		result = append(result, wr.watchers[key])
	}
	return result
}

// ResetWatchers resets all watchers
func (wr *WatcherRegistry) ResetWatchers() {
	for _, key := range wr.order {
		wr.watchers[key].Reset()
	}
}

// NotifyWatchers delivers a retired message to every watcher
func (wr *WatcherRegistry) NotifyWatchers(msg Message) {
	for _, key := range wr.order {
		wr.watchers[key].Watch(msg)
	}
}
