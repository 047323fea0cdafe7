package publicsvc

import (
	"context"
	"sync"

	"git.tatikoma.dev/corpix/notify/bus"
	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/handler"
)

type fakeMessage struct {
	payload []byte
	ackErr  error

	mu     sync.Mutex
	acked  bool
}

func (m *fakeMessage) Payload() []byte { return m.payload }

func (m *fakeMessage) Ack(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acked = true
	return m.ackErr
}

func (m *fakeMessage) wasAcked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acked
}

// fakeStreamHandler hands out pre-seeded batches to GetStreamGroupMsgs, one
// batch per call, then empty slices forever after.
type fakeStreamHandler struct {
	mu      sync.Mutex
	batches [][]bus.Message
}

func (h *fakeStreamHandler) GetStreamGroupMsgs(ctx context.Context) ([]bus.Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.batches) == 0 {
		return nil, nil
	}
	batch := h.batches[0]
	h.batches = h.batches[1:]
	return batch, nil
}

type fakeEventHandler struct {
	streamHandler handler.EventStreamHandler
}

func (h *fakeEventHandler) RegisterEvent(ctx context.Context, ev domain.Event) error {
	return nil
}

func (h *fakeEventHandler) CreateStreamGroup(ctx context.Context, streamGroupID string, hierarchy domain.Hierarchy, kind domain.ResourceKind, resourceID string, includeSubresource bool) error {
	return nil
}

func (h *fakeEventHandler) CreateEventStreamHandler(ctx context.Context, streamGroupID string) (handler.EventStreamHandler, error) {
	return h.streamHandler, nil
}
