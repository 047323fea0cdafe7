package bus

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"

	"git.tatikoma.dev/corpix/notify/errors"
	"git.tatikoma.dev/corpix/notify/iter"
	"git.tatikoma.dev/corpix/notify/pool"
)

// StreamName is the one pre-provisioned persistent stream this system
// attaches consumers to. It is never created or deleted here.
const StreamName = "STORAGE_UPDATES"

// JetStream is the Adapter implementation backed by a NATS JetStream
// context. Publish fan-out runs on a bounded worker pool so one event with
// a wide subject set can't open unbounded goroutines.
type JetStream struct {
	js      nats.JetStreamContext
	stream  *nats.StreamInfo
	pool    *pool.Pool
	batch   int
}

// Config configures the JetStream adapter's connection and parallelism.
type Config struct {
	URL      string
	PoolSize int // 0 -> pool.New default (NumCPU)
	Backlog  int // 0 -> pool.New default (1)
}

// New connects to NATS, resolves the pre-provisioned stream, and starts the
// publish-fan-out worker pool.
func New(cfg Config) (*JetStream, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to nats")
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, errors.Wrap(err, "failed to create jetstream context")
	}

	info, err := js.StreamInfo(StreamName)
	if err != nil {
		nc.Close()
		return nil, errors.Wrapf(err, "failed to resolve pre-provisioned stream %q", StreamName)
	}

	p := pool.New(cfg.PoolSize, cfg.Backlog)

	return &JetStream{
		js:     js,
		stream: info,
		pool:   p,
		batch:  p.Size(),
	}, nil
}

// Close releases the worker pool. The NATS connection is intentionally not
// closed here since JetStreamContext does not expose its originating
// *nats.Conn; callers that need connection-level shutdown should keep a
// reference to it alongside this adapter.
func (a *JetStream) Close() {
	a.pool.Close()
}

// Publish fans payload out to every subject in subjects in parallel,
// batched to the pool's concurrency so at most one pool's worth of this
// event's subjects is in flight at a time; the next batch starts only after
// the previous one has finished. Per-subject failures are logged and absorbed, matching the
// reference's log-and-continue behavior (see DESIGN.md).
func (a *JetStream) Publish(ctx context.Context, subjects []string, payload []byte) {
	for batch := range iter.Batches(subjects, a.batch) {
		results := make(chan error, len(batch))
		for _, subj := range batch {
			subj := subj
			go func() {
				_, err := a.pool.RunContext(ctx, func(ctx context.Context) (any, error) {
					_, err := a.js.Publish(subj, payload)
					return nil, err
				})
				results <- err
			}()
		}
		for range batch {
			if err := <-results; err != nil {
				errors.Log(err, "failed to publish to subject")
			}
		}
	}
}

// CreateConsumer creates a durable, pull-based consumer named name filtered
// by filterSubject. Re-creating a consumer already bound to the same filter
// is a no-op success: the stream's own consumer-info lookup tells us
// whether one already matches.
func (a *JetStream) CreateConsumer(ctx context.Context, name, filterSubject string) error {
	info, err := a.js.ConsumerInfo(StreamName, name)
	if err == nil {
		if info.Config.FilterSubject == filterSubject {
			return nil
		}
		return errors.Errorf(
			"consumer %q already exists with a different filter subject (%q, want %q)",
			name, info.Config.FilterSubject, filterSubject,
		)
	}

	_, err = a.js.AddConsumer(StreamName, &nats.ConsumerConfig{
		Durable:       name,
		FilterSubject: filterSubject,
		AckPolicy:     nats.AckExplicitPolicy,
		DeliverPolicy: nats.DeliverAllPolicy,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create consumer %q", name)
	}
	return nil
}

// Consumer resolves an existing durable consumer by name.
func (a *JetStream) Consumer(ctx context.Context, name string) (Consumer, error) {
	sub, err := a.js.PullSubscribe("", name, nats.Bind(StreamName, name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to bind to consumer %q", name)
	}
	return &jetstreamConsumer{sub: sub, name: name}, nil
}

type jetstreamConsumer struct {
	sub  *nats.Subscription
	name string
}

// Pull performs a single bounded pull, returning promptly at expiry even
// when idle.
func (c *jetstreamConsumer) Pull(ctx context.Context, expiry time.Duration) ([]Message, error) {
	ctx, cancel := context.WithTimeout(ctx, expiry)
	defer cancel()
	msgs, err := c.sub.Fetch(256, nats.Context(ctx))
	if err != nil {
		if err == nats.ErrTimeout || err == context.DeadlineExceeded {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to pull batch from consumer %q", c.name)
	}

	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[i] = &jetstreamMessage{msg: m}
	}
	return out, nil
}

type jetstreamMessage struct {
	msg *nats.Msg
}

func (m *jetstreamMessage) Payload() []byte { return m.msg.Data }

func (m *jetstreamMessage) Ack(ctx context.Context) error {
	if err := m.msg.Ack(); err != nil {
		return errors.Wrap(err, "failed to ack message")
	}
	return nil
}
