// Package registryclient wraps the Registry service: minting and
// resolving stream groups, and resolving a resource's ancestor hierarchy.
// Every call forwards the caller's api-token via outgoing gRPC metadata,
// matching the reference implementation's per-request token propagation.
package registryclient

import (
	"context"

	"github.com/google/uuid"

	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/errors"
	"git.tatikoma.dev/corpix/notify/rpc/auth"
	"git.tatikoma.dev/corpix/notify/wire"
)

// Client is the capability set the Public Notification Service needs from
// the Registry.
type Client interface {
	CreateStreamGroup(ctx context.Context, kind domain.ResourceKind, resourceID string, eventType domain.EventType, includeSubresource bool, token string) (domain.StreamGroup, error)
	GetStreamGroup(ctx context.Context, id string, token string) (domain.StreamGroup, error)
	GetResourceHierarchy(ctx context.Context, kind domain.ResourceKind, resourceID string) ([]domain.Hierarchy, error)
}

func fromMessage(m wire.StreamGroupMessage) domain.StreamGroup {
	return domain.StreamGroup{
		ID:                 m.ID,
		Kind:               m.Resource,
		ResourceID:         m.ResourceID,
		IncludeSubresource: m.NotifyOnSubResource,
		EventType:          m.EventType,
	}
}

func fromHierarchyMessage(m wire.HierarchyMessage) domain.Hierarchy {
	return domain.Hierarchy{
		ProjectID:           m.ProjectID,
		CollectionID:        m.CollectionID,
		SharedObjectID:      m.SharedObjectID,
		SharedObjectGroupID: m.SharedObjectGroupID,
	}
}

// grpcClient is the production implementation. events and hierarchy are
// kept as separate client handles because the reference deployment dials
// them as two distinct services (EVENT_SERVICE and
// RESOURCE_INFO_SERVER_HOST respectively), even though both happen to
// satisfy the same generated wire.RegistryServiceClient shape here.
type grpcClient struct {
	events    wire.RegistryServiceClient
	hierarchy wire.RegistryServiceClient
}

// New builds a production Client. events backs CreateStreamGroup and
// GetStreamGroup; hierarchy backs GetResourceHierarchy.
func New(events, hierarchy wire.RegistryServiceClient) Client {
	return &grpcClient{events: events, hierarchy: hierarchy}
}

func (c *grpcClient) CreateStreamGroup(ctx context.Context, kind domain.ResourceKind, resourceID string, eventType domain.EventType, includeSubresource bool, token string) (domain.StreamGroup, error) {
	ctx = auth.WithAPIToken(ctx, token)
	resp, err := c.events.CreateStreamGroup(ctx, &wire.CreateStreamGroupRequest{
		Resource:            kind,
		ResourceID:          resourceID,
		NotifyOnSubResource: includeSubresource,
		EventType:           eventType,
		Token:               token,
	})
	if err != nil {
		return domain.StreamGroup{}, errors.Wrap(err, "failed to create stream group")
	}
	return fromMessage(resp.StreamGroup), nil
}

func (c *grpcClient) GetStreamGroup(ctx context.Context, id string, token string) (domain.StreamGroup, error) {
	ctx = auth.WithAPIToken(ctx, token)
	resp, err := c.events.GetStreamGroup(ctx, &wire.GetStreamGroupRequest{ID: id, Token: token})
	if err != nil {
		return domain.StreamGroup{}, errors.Wrapf(err, "failed to get stream group %q", id)
	}
	return fromMessage(resp.StreamGroup), nil
}

func (c *grpcClient) GetResourceHierarchy(ctx context.Context, kind domain.ResourceKind, resourceID string) ([]domain.Hierarchy, error) {
	resp, err := c.hierarchy.GetResourceHierarchy(ctx, &wire.GetResourceHierarchyRequest{
		Resource:   kind,
		ResourceID: resourceID,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get resource hierarchy for %q", resourceID)
	}
	hierarchies := make([]domain.Hierarchy, 0, len(resp.Hierarchies))
	for _, h := range resp.Hierarchies {
		hierarchies = append(hierarchies, fromHierarchyMessage(h))
	}
	return hierarchies, nil
}

// memoryGroup is an in-memory record backing the stub client below.
type memoryGroup struct {
	group domain.StreamGroup
}

// Memory is a stub Client for local development and tests: it mints
// random UUID ids and never contacts a real Registry. Hierarchies default
// to empty unless seeded via SeedHierarchy.
type Memory struct {
	groups      map[string]memoryGroup
	hierarchies map[string][]domain.Hierarchy
}

func NewMemory() *Memory {
	return &Memory{
		groups:      make(map[string]memoryGroup),
		hierarchies: make(map[string][]domain.Hierarchy),
	}
}

// SeedHierarchy registers the ancestor chain returned for resourceID.
func (m *Memory) SeedHierarchy(resourceID string, hierarchies []domain.Hierarchy) {
	m.hierarchies[resourceID] = hierarchies
}

func (m *Memory) CreateStreamGroup(ctx context.Context, kind domain.ResourceKind, resourceID string, eventType domain.EventType, includeSubresource bool, token string) (domain.StreamGroup, error) {
	group := domain.StreamGroup{
		ID:                 uuid.NewString(),
		Kind:               kind,
		ResourceID:         resourceID,
		IncludeSubresource: includeSubresource,
		EventType:          eventType,
	}
	m.groups[group.ID] = memoryGroup{group: group}
	return group, nil
}

func (m *Memory) GetStreamGroup(ctx context.Context, id string, token string) (domain.StreamGroup, error) {
	g, ok := m.groups[id]
	if !ok {
		return domain.StreamGroup{}, errors.Errorf("stream group %q not found", id)
	}
	return g.group, nil
}

func (m *Memory) GetResourceHierarchy(ctx context.Context, kind domain.ResourceKind, resourceID string) ([]domain.Hierarchy, error) {
	return m.hierarchies[resourceID], nil
}
