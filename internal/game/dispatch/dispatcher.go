package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/gisim/gisim-go/internal/game/rules"
	"go.uber.org/zap"
)

// DefaultMaxSteps bounds the number of entity offers in a single run.
const DefaultMaxSteps = 10000

var (
	// ErrStepLimit is returned when a run exceeds its offer budget, which means
	// some entity keeps reacting to the same message.
	ErrStepLimit = errors.New("dispatch step limit exceeded")

	// ErrStaleHead is returned when the retired message is not the one the
	// final pass was run against.
	ErrStaleHead = errors.New("queue head changed during a pass with no reactions")
)

// Roster supplies the entities to offer messages to, in dispatch order.
type Roster interface {
	Entities() []rules.Entity
}

// Pruner is implemented by rosters that drop spent entities after each retired message.
type Pruner interface {
	Prune() int
}

// Result summarises a dispatch run.
type Result struct {
	// Retired is the number of messages removed from the queue.
	Retired int
	// Steps is the number of entity offers made.
	Steps int
	// Reactions is the number of offers that reported handled.
	Reactions int
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithMaxSteps overrides DefaultMaxSteps. Zero or less disables the bound.
func WithMaxSteps(n int) Option {
	return func(d *Dispatcher) {
		d.maxSteps = n
	}
}

// WithWatchers notifies the registry of every retired message.
func WithWatchers(registry *rules.WatcherRegistry) Option {
	return func(d *Dispatcher) {
		d.watchers = registry
	}
}

// WithJournal records a frame for every retired message.
func WithJournal(journal *Journal) Option {
	return func(d *Dispatcher) {
		d.journal = journal
	}
}

// Dispatcher drains a message queue by offering its head to every active
// entity until none reacts, then retiring it.
//
// After any reaction the head is peeked again, since the reacting entity may
// have pushed a message that outranks it. Entities are always offered in
// roster order starting from the first. A Dispatcher is used from a single
// goroutine.
type Dispatcher struct {
	roster   Roster
	logger   *zap.Logger
	maxSteps int
	watchers *rules.WatcherRegistry
	journal  *Journal
}

// NewDispatcher creates a dispatcher over a roster.
func NewDispatcher(roster Roster, logger *zap.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		roster:   roster,
		logger:   logger,
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run drains the queue. It returns early on a reaction error, on the step
// bound, or when ctx is cancelled; messages still pending stay in the queue.
func (d *Dispatcher) Run(ctx context.Context, q *rules.MessageQueue) (Result, error) {
	var res Result
	for !q.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		head, err := q.Peek()
		if err != nil {
			return res, err
		}

		handled, err := d.pass(q, head, &res)
		if err != nil {
			return res, err
		}
		if handled {
			continue
		}

		retired, err := q.Pop()
		if err != nil {
			return res, err
		}
		if retired != head {
			return res, fmt.Errorf("%w: expected %s, popped %s", ErrStaleHead, head.Header().ID, retired.Header().ID)
		}
		res.Retired++
		d.retire(retired, q, res)
	}

	d.logger.Debug("dispatch run complete",
		zap.Int("retired", res.Retired),
		zap.Int("steps", res.Steps),
		zap.Int("reactions", res.Reactions))
	return res, nil
}

// pass offers head to each active entity and stops at the first reaction.
func (d *Dispatcher) pass(q *rules.MessageQueue, head rules.Message, res *Result) (bool, error) {
	for _, entity := range d.roster.Entities() {
		if !entity.Active() {
			continue
		}

		res.Steps++
		if d.maxSteps > 0 && res.Steps > d.maxSteps {
			d.logger.Error("dispatch exceeded maximum steps",
				zap.String("message_id", head.Header().ID),
				zap.String("message_type", string(head.Type())),
				zap.Int("max_steps", d.maxSteps))
			return false, fmt.Errorf("%w: %d offers, head %s", ErrStepLimit, d.maxSteps, head.Type())
		}

		handled, err := entity.React(q)
		if err != nil {
			return false, fmt.Errorf("entity %s reacting to %s: %w", entity.ID(), head.Type(), err)
		}
		if handled {
			res.Reactions++
			d.logger.Debug("entity reacted",
				zap.String("entity", entity.Encode().Name),
				zap.String("owner", entity.Owner().String()),
				zap.String("message_id", head.Header().ID),
				zap.String("message_type", string(head.Type())),
				zap.Int("pending", q.Len()))
			return true, nil
		}
	}
	return false, nil
}

func (d *Dispatcher) retire(msg rules.Message, q *rules.MessageQueue, res Result) {
	d.logger.Debug("message retired",
		zap.String("message_id", msg.Header().ID),
		zap.String("message_type", string(msg.Type())),
		zap.Int("responders", msg.Header().ResponseCount()),
		zap.Int("pending", q.Len()))

	if d.watchers != nil {
		d.watchers.NotifyWatchers(msg)
	}

	if d.journal != nil {
		entities := d.roster.Entities()
		snapshots := make([]rules.Snapshot, 0, len(entities))
		for _, entity := range entities {
			snapshots = append(snapshots, entity.Encode())
		}
		d.journal.Record(&Frame{
			Step:     res.Steps,
			Retired:  recordMessage(msg),
			Pending:  q.Len(),
			Entities: snapshots,
		})
	}

	if pruner, ok := d.roster.(Pruner); ok {
		if removed := pruner.Prune(); removed > 0 {
			d.logger.Debug("pruned spent entities", zap.Int("removed", removed))
		}
	}
}
