package rules

import (
	"container/heap"
	"sort"
)

// queueItem pairs a message with its insertion sequence, the tie-break key
// among messages of equal priority.
type queueItem struct {
	msg   Message
	seq   uint64
	index int
}

type messageHeap []*queueItem

func (h messageHeap) Len() int { return len(h) }

func (h messageHeap) Less(i, j int) bool {
	return itemLess(h[i], h[j])
}

func (h messageHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *messageHeap) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *messageHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

func itemLess(a, b *queueItem) bool {
	pa, pb := a.msg.Header().Priority(), b.msg.Header().Priority()
	if pa != pb {
		return pa < pb
	}
	return a.seq < b.seq
}

// MessageQueue holds pending messages ordered by priority, first-in first-out
// among equal priorities.
//
// The queue is shared by the dispatcher and every entity during a dispatch
// run and is not safe for concurrent use.
type MessageQueue struct {
	items   messageHeap
	nextSeq uint64
}

// NewMessageQueue creates an empty queue
func NewMessageQueue() *MessageQueue {
	return &MessageQueue{
		items: make(messageHeap, 0, 16),
	}
}

// Push inserts a message. The head changes only if the new message outranks it.
// Nil messages, including typed nil pointers, are ignored.
func (q *MessageQueue) Push(msg Message) {
	if isNilMessage(msg) {
		return
	}
	heap.Push(&q.items, &queueItem{msg: msg, seq: q.nextSeq})
	q.nextSeq++
}

func isNilMessage(msg Message) bool {
	switch m := msg.(type) {
	case nil:
		return true
	case *TriggerSummonEffectMsg:
		return m == nil
	case *RoundEndMsg:
		return m == nil
	case *DealDamageMsg:
		return m == nil
	default:
		return false
	}
}

// Peek returns the head without removing it
func (q *MessageQueue) Peek() (Message, error) {
	if len(q.items) == 0 {
		return nil, ErrEmptyQueue
	}
	return q.items[0].msg, nil
}

// Pop removes and returns the head
func (q *MessageQueue) Pop() (Message, error) {
	if len(q.items) == 0 {
		return nil, ErrEmptyQueue
	}
	item := heap.Pop(&q.items).(*queueItem)
	return item.msg, nil
}

// Len returns the number of pending messages
func (q *MessageQueue) Len() int {
	return len(q.items)
}

// IsEmpty returns whether the queue has no pending messages
func (q *MessageQueue) IsEmpty() bool {
	return len(q.items) == 0
}

// List returns the pending messages in resolution order (head first)
func (q *MessageQueue) List() []Message {
	sorted := make([]*queueItem, len(q.items))
	copy(sorted, q.items)
	sort.Slice(sorted, func(i, j int) bool {
		return itemLess(sorted[i], sorted[j])
	})
	out := make([]Message, len(sorted))
	for i, item := range sorted {
		out[i] = item.msg
	}
	return out
}
