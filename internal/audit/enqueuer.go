package audit

import (
	"context"
	"errors"
	"time"
)

// ErrInboxFull is returned when the audit inbox cannot accept another event.
var ErrInboxFull = errors.New("audit inbox is full")

// Enqueuer hands events to a Worker through a bounded inbox. Emit never
// blocks: when the inbox is full the event is rejected so a slow audit sink
// cannot back-pressure compliance checks.
type Enqueuer struct {
	inbox chan<- Event
}

func NewEnqueuer(inbox chan<- Event) *Enqueuer {
	return &Enqueuer{inbox: inbox}
}

func (e *Enqueuer) Emit(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case e.inbox <- event:
		return nil
	default:
		return ErrInboxFull
	}
}
