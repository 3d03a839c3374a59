package audit

import "context"

// Store is the append-only persistence port for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	// ListByLocation returns events for one location, newest first.
	ListByLocation(ctx context.Context, location string) ([]Event, error)
}
