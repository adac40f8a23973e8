package audit

import (
	"context"
	"sync"
)

// Publisher is a sink for audit events. The Kafka publisher is the
// production implementation; MemoryPublisher serves tests and broker-less
// deployments.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// MemoryPublisher collects events in memory.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryPublisher creates an in-memory audit sink.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Publish appends the event.
func (p *MemoryPublisher) Publish(ctx context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a snapshot of everything published so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Close is a no-op for the memory sink.
func (p *MemoryPublisher) Close() {}
