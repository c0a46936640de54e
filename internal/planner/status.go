// Package planner holds the pieces shared by every asynchronously generated
// weekly plan: the generation status lifecycle, the outbound request to the
// workflow engine and the callback it posts back.
package planner

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// transitions lists the allowed moves. A callback may land before the
// dispatch ack (pending→completed), a late callback may rescue a failed
// dispatch (failed→completed) and redelivery is idempotent
// (completed→completed).
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusFailed, StatusCompleted},
	StatusProcessing: {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusCompleted},
	StatusFailed:     {StatusCompleted},
}

var ErrInvalidTransition = apperr.Conflict("invalid generation status transition")

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Transition returns nil when a schedule in from may move to to.
func Transition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
