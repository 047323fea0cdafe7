// Package bus wraps a JetStream-like durable stream behind the capability
// set the Event Handler needs: publish, durable filtered consumer creation,
// consumer lookup, bounded pull, and per-message ack.
package bus

import (
	"context"
	"time"
)

// Message is one bus-delivered message, opaque to everything above the
// adapter except for its payload bytes and the ability to ack it.
type Message interface {
	Payload() []byte
	Ack(ctx context.Context) error
}

// Consumer identifies a durable, filtered view over the persistent stream.
type Consumer interface {
	// Pull performs a single bounded pull, returning whatever arrived
	// (possibly nothing) within expiry. It must return promptly at expiry
	// even when idle.
	Pull(ctx context.Context, expiry time.Duration) ([]Message, error)
}

// Adapter is the full capability set the Event Handler is built on.
type Adapter interface {
	// Publish fans a single payload out to every subject in subjects, in
	// parallel, bounded by the adapter's worker pool. Per-subject failures
	// are logged and do not fail the call.
	Publish(ctx context.Context, subjects []string, payload []byte)

	// CreateConsumer creates (or, if one already exists under name with the
	// same filter subject, no-ops on) a durable consumer named name,
	// filtered by filterSubject.
	CreateConsumer(ctx context.Context, name, filterSubject string) error

	// Consumer resolves an existing durable consumer by name.
	Consumer(ctx context.Context, name string) (Consumer, error)
}
