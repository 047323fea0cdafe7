package internalsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/handler"
	"git.tatikoma.dev/corpix/notify/wire"
)

type fakeHandler struct {
	registered []domain.Event
	err        error
}

func (f *fakeHandler) RegisterEvent(ctx context.Context, ev domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.registered = append(f.registered, ev)
	return nil
}

func (f *fakeHandler) CreateStreamGroup(ctx context.Context, streamGroupID string, hierarchy domain.Hierarchy, kind domain.ResourceKind, resourceID string, includeSubresource bool) error {
	return nil
}

func (f *fakeHandler) CreateEventStreamHandler(ctx context.Context, streamGroupID string) (handler.EventStreamHandler, error) {
	return nil, nil
}

func TestEmitEventRejectsUnspecifiedResource(t *testing.T) {
	s := New(nil)
	_, err := s.EmitEvent(context.Background(), &wire.EmitEventRequest{
		Resource:   domain.ResourceKindUnspecified,
		ResourceID: "abc",
	})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
}

func TestEmitEventRegistersEachRelation(t *testing.T) {
	h := &fakeHandler{}
	s := New(h)

	req := &wire.EmitEventRequest{
		Resource:   domain.ResourceKindObjectGroup,
		ResourceID: "og-1",
		EventType:  domain.EventTypeCreated,
		Relations: []domain.Relation{
			{Project: "p1", Collection: "c1", ObjectGroups: []domain.ObjectGroupRef{{SharedObjectGroupID: "sog-1"}}},
			{Project: "p1", Collection: "c1", ObjectGroups: []domain.ObjectGroupRef{{SharedObjectGroupID: "sog-2"}}},
		},
	}

	_, err := s.EmitEvent(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, h.registered, 2)
	assert.Equal(t, "sog-1", h.registered[0].Relation.ObjectGroups[0].SharedObjectGroupID)
	assert.Equal(t, "sog-2", h.registered[1].Relation.ObjectGroups[0].SharedObjectGroupID)
}

func TestEmitEventPropagatesHandlerFailureAsInternal(t *testing.T) {
	h := &fakeHandler{err: assert.AnError}
	s := New(h)

	_, err := s.EmitEvent(context.Background(), &wire.EmitEventRequest{
		Resource:   domain.ResourceKindProject,
		ResourceID: "p1",
		Relations:  []domain.Relation{{}},
	})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
}
