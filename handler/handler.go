// Package handler implements the domain layer above the Bus Adapter:
// register_event (publish fan-out), create_stream_group (query derivation +
// consumer creation), and create_event_stream_handler (consumer
// attachment).
//
// EventHandler is expressed as an interface with a single concrete variant
// (JetStream-backed) today, composed rather than inherited, so an alternate
// bus backend could be swapped in without touching the two gRPC services
// built on top of it.
package handler

import (
	"context"
	"time"

	"git.tatikoma.dev/corpix/notify/errors"

	"git.tatikoma.dev/corpix/notify/bus"
	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/subject"
	"git.tatikoma.dev/corpix/notify/wire"
)

// EventHandler is the capability set both gRPC services are built on.
type EventHandler interface {
	RegisterEvent(ctx context.Context, ev domain.Event) error
	CreateStreamGroup(ctx context.Context, streamGroupID string, hierarchy domain.Hierarchy, kind domain.ResourceKind, resourceID string, includeSubresource bool) error
	CreateEventStreamHandler(ctx context.Context, streamGroupID string) (EventStreamHandler, error)
}

// EventStreamHandler exposes pull access to a single bus consumer.
type EventStreamHandler interface {
	GetStreamGroupMsgs(ctx context.Context) ([]bus.Message, error)
}

// PullExpiry is the bounded wait for a single pull.
const PullExpiry = 250 * time.Millisecond

type jetstreamHandler struct {
	adapter bus.Adapter
	expiry  time.Duration
}

// New returns the JetStream-backed EventHandler. expiry of 0 uses
// PullExpiry.
func New(adapter bus.Adapter, expiry time.Duration) EventHandler {
	if expiry <= 0 {
		expiry = PullExpiry
	}
	return &jetstreamHandler{adapter: adapter, expiry: expiry}
}

// subjectsFor computes the publish subject set for an event.
func subjectsFor(ev domain.Event) ([]string, error) {
	r := ev.Relation
	switch ev.Kind {
	case domain.ResourceKindProject:
		return []string{subject.ProjectSubject(ev.ResourceID)}, nil
	case domain.ResourceKindCollection:
		return []string{subject.CollectionSubject(r.Project, ev.ResourceID)}, nil
	case domain.ResourceKindObjectGroup:
		subjects := make([]string, 0, len(r.ObjectGroups))
		for _, og := range r.ObjectGroups {
			subjects = append(subjects, subject.ObjectGroupSubject(r.Project, r.Collection, og.SharedObjectGroupID, ev.ResourceID))
		}
		return subjects, nil
	case domain.ResourceKindObject:
		subjects := make([]string, 0, len(r.ObjectGroups)+1)
		for _, og := range r.ObjectGroups {
			subjects = append(subjects, subject.ObjectGroupSubject(r.Project, r.Collection, og.SharedObjectGroupID, ev.ResourceID))
		}
		subjects = append(subjects, subject.ObjectSubject(r.Project, r.Collection, r.SharedObject, ev.ResourceID))
		return subjects, nil
	default:
		return nil, domain.ErrUnsupportedResourceKind
	}
}

// queryFor computes the subscribe-side filter for a stream-group creation
// request.
func queryFor(kind domain.ResourceKind, hierarchy domain.Hierarchy, resourceID string, includeSubresource bool) (string, error) {
	switch kind {
	case domain.ResourceKindProject:
		return subject.ProjectQuery(resourceID, includeSubresource), nil
	case domain.ResourceKindCollection:
		return subject.CollectionQuery(hierarchy.ProjectID, resourceID, includeSubresource), nil
	case domain.ResourceKindObject:
		return subject.ObjectQuery(hierarchy.ProjectID, hierarchy.CollectionID, hierarchy.SharedObjectID, resourceID, includeSubresource), nil
	case domain.ResourceKindObjectGroup:
		return subject.ObjectGroupQuery(hierarchy.ProjectID, hierarchy.CollectionID, hierarchy.SharedObjectGroupID, resourceID, includeSubresource), nil
	default:
		return "", domain.ErrUnsupportedResourceKind
	}
}

func (h *jetstreamHandler) RegisterEvent(ctx context.Context, ev domain.Event) error {
	if err := ev.Kind.Validate(); err != nil {
		return err
	}
	subjects, err := subjectsFor(ev)
	if err != nil {
		return err
	}

	payload, err := wire.EncodeNotification(ev)
	if err != nil {
		return errors.Wrap(err, "failed to encode notification payload")
	}

	h.adapter.Publish(ctx, subjects, payload)
	return nil
}

func (h *jetstreamHandler) CreateStreamGroup(ctx context.Context, streamGroupID string, hierarchy domain.Hierarchy, kind domain.ResourceKind, resourceID string, includeSubresource bool) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	filterSubject, err := queryFor(kind, hierarchy, resourceID, includeSubresource)
	if err != nil {
		return err
	}
	return h.adapter.CreateConsumer(ctx, streamGroupID, filterSubject)
}

func (h *jetstreamHandler) CreateEventStreamHandler(ctx context.Context, streamGroupID string) (EventStreamHandler, error) {
	consumer, err := h.adapter.Consumer(ctx, streamGroupID)
	if err != nil {
		return nil, err
	}
	return &jetstreamStreamHandler{consumer: consumer, expiry: h.expiry}, nil
}

type jetstreamStreamHandler struct {
	consumer bus.Consumer
	expiry   time.Duration
}

func (s *jetstreamStreamHandler) GetStreamGroupMsgs(ctx context.Context) ([]bus.Message, error) {
	return s.consumer.Pull(ctx, s.expiry)
}
