package audit

import (
	"context"
	"log/slog"
	"time"
)

// Worker drains audit events from a channel and hands them to the
// publisher. The channel decouples request latency from broker latency:
// producers use a non-blocking send and count drops, the worker absorbs the
// rest. Publish failures are logged and skipped; audit is best-effort by
// design and must never take the request path down.
type Worker struct {
	publisher Publisher
	inbox     <-chan Event
	logger    *slog.Logger
}

func NewWorker(publisher Publisher, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{publisher: publisher, inbox: inbox, logger: logger}
}

// Run consumes until ctx is cancelled, then drains whatever is already
// buffered before returning. Cancellation is the normal way to stop the
// worker, so it returns nil rather than the context error: a clean shutdown
// must not look like a failure to the process lifecycle.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return nil
		case event := <-w.inbox:
			w.publish(ctx, event)
		}
	}
}

// drain publishes buffered events with a short grace period so shutdown
// does not discard what requests already handed over.
func (w *Worker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case event := <-w.inbox:
			w.publish(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) publish(ctx context.Context, event Event) {
	if err := w.publisher.Publish(ctx, event); err != nil {
		w.logger.Error("audit publish failed",
			"action", event.Action,
			"request_id", event.RequestID,
			"error", err,
		)
	}
}
