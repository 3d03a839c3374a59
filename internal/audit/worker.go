package audit

import (
	"context"
	"log/slog"
)

// Worker drains audit events from an inbox into the store, keeping audit
// persistence off the compliance-check path. A failed append is logged and
// the event dropped; one bad sink write must not stall the trail.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
				w.logger.ErrorContext(ctx, "audit event append failed",
					"report_id", event.ReportID,
					"error", err,
				)
			}
		}
	}
}
