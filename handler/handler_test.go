package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.tatikoma.dev/corpix/notify/bus"
	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/subject"
)

type fakeConsumer struct{}

func (fakeConsumer) Pull(ctx context.Context, expiry time.Duration) ([]bus.Message, error) {
	return nil, nil
}

type fakeAdapter struct {
	publishedSubjects []string
	publishedPayload  []byte

	createConsumerName   string
	createConsumerFilter string
}

func (a *fakeAdapter) Publish(ctx context.Context, subjects []string, payload []byte) {
	a.publishedSubjects = subjects
	a.publishedPayload = payload
}

func (a *fakeAdapter) CreateConsumer(ctx context.Context, name, filterSubject string) error {
	a.createConsumerName = name
	a.createConsumerFilter = filterSubject
	return nil
}

func (a *fakeAdapter) Consumer(ctx context.Context, name string) (bus.Consumer, error) {
	return fakeConsumer{}, nil
}

func TestRegisterEventRejectsUnspecifiedKind(t *testing.T) {
	h := New(&fakeAdapter{}, 0)
	err := h.RegisterEvent(context.Background(), domain.Event{Kind: domain.ResourceKindUnspecified, ResourceID: "p1"})
	require.ErrorIs(t, err, domain.ErrUnsupportedResourceKind)
}

func TestRegisterEventPublishesProjectSubject(t *testing.T) {
	adapter := &fakeAdapter{}
	h := New(adapter, 0)

	err := h.RegisterEvent(context.Background(), domain.Event{
		Kind:       domain.ResourceKindProject,
		ResourceID: "p1",
		Type:       domain.EventTypeUpdated,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{subject.ProjectSubject("p1")}, adapter.publishedSubjects)
	assert.NotEmpty(t, adapter.publishedPayload)
}

func TestRegisterEventObjectFansOutToObjectGroupsPlusSharedObject(t *testing.T) {
	adapter := &fakeAdapter{}
	h := New(adapter, 0)

	err := h.RegisterEvent(context.Background(), domain.Event{
		Kind:       domain.ResourceKindObject,
		ResourceID: "o1",
		Type:       domain.EventTypeCreated,
		Relation: domain.Relation{
			Project:      "p1",
			Collection:   "c1",
			SharedObject: "so1",
			ObjectGroups: []domain.ObjectGroupRef{{SharedObjectGroupID: "sog1"}, {SharedObjectGroupID: "sog2"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		subject.ObjectGroupSubject("p1", "c1", "sog1", "o1"),
		subject.ObjectGroupSubject("p1", "c1", "sog2", "o1"),
		subject.ObjectSubject("p1", "c1", "so1", "o1"),
	}, adapter.publishedSubjects)
}

func TestRegisterEventObjectGroupFansOutOncePerRelation(t *testing.T) {
	adapter := &fakeAdapter{}
	h := New(adapter, 0)

	err := h.RegisterEvent(context.Background(), domain.Event{
		Kind:       domain.ResourceKindObjectGroup,
		ResourceID: "og1",
		Type:       domain.EventTypeDeleted,
		Relation: domain.Relation{
			Project:      "p1",
			Collection:   "c1",
			ObjectGroups: []domain.ObjectGroupRef{{SharedObjectGroupID: "sog1"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{subject.ObjectGroupSubject("p1", "c1", "sog1", "og1")}, adapter.publishedSubjects)
}

func TestCreateStreamGroupRejectsAllKind(t *testing.T) {
	h := New(&fakeAdapter{}, 0)
	err := h.CreateStreamGroup(context.Background(), "g1", domain.Hierarchy{}, domain.ResourceKindAll, "p1", false)
	require.ErrorIs(t, err, domain.ErrUnsupportedResourceKind)
}

func TestCreateStreamGroupDerivesCollectionQueryFromHierarchy(t *testing.T) {
	adapter := &fakeAdapter{}
	h := New(adapter, 0)

	err := h.CreateStreamGroup(context.Background(), "g1", domain.Hierarchy{ProjectID: "p1"}, domain.ResourceKindCollection, "c1", true)
	require.NoError(t, err)
	assert.Equal(t, "g1", adapter.createConsumerName)
	assert.Equal(t, subject.CollectionQuery("p1", "c1", true), adapter.createConsumerFilter)
}

func TestCreateStreamGroupDerivesObjectQueryFromSharedObjectID(t *testing.T) {
	adapter := &fakeAdapter{}
	h := New(adapter, 0)

	hierarchy := domain.Hierarchy{ProjectID: "p1", CollectionID: "c1", SharedObjectID: "so1"}
	err := h.CreateStreamGroup(context.Background(), "g1", hierarchy, domain.ResourceKindObject, "o1", false)
	require.NoError(t, err)
	assert.Equal(t, subject.ObjectQuery("p1", "c1", "so1", "o1", false), adapter.createConsumerFilter)
}

func TestCreateEventStreamHandlerPullsThroughConsumer(t *testing.T) {
	adapter := &fakeAdapter{}
	h := New(adapter, 0)

	streamHandler, err := h.CreateEventStreamHandler(context.Background(), "g1")
	require.NoError(t, err)

	msgs, err := streamHandler.GetStreamGroupMsgs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
