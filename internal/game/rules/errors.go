package rules

import "errors"

var (
	// ErrEmptyQueue is returned by Peek and Pop on a queue with no pending messages.
	ErrEmptyQueue = errors.New("message queue empty")

	// ErrInvalidTransition is returned when a reaction would drive an entity into
	// an illegal state, such as consuming a use that is not there.
	ErrInvalidTransition = errors.New("invalid entity transition")

	// ErrAlreadyResponded is returned when an entity marks a message it has already responded to.
	ErrAlreadyResponded = errors.New("entity already responded to message")
)
