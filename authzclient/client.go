// Package authzclient wraps the Authorization service's single
// allow/deny decision, forwarding the caller's api-token.
package authzclient

import (
	"context"

	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/errors"
	"git.tatikoma.dev/corpix/notify/rpc/auth"
	"git.tatikoma.dev/corpix/notify/wire"
)

// Client is the capability set the Public Notification Service needs from
// Authorization.
type Client interface {
	Authorize(ctx context.Context, kind domain.ResourceKind, action wire.ResourceAction, resourceID string, token string) (bool, error)
}

// grpcClient is the production implementation, backed by a real
// Authorization service over gRPC. The upstream call itself is treated as
// fallible throughout: a transport or decode failure here must surface as
// an error, never be unwrapped/panicked on.
type grpcClient struct {
	rpc wire.AuthorizationServiceClient
}

func New(rpc wire.AuthorizationServiceClient) Client {
	return &grpcClient{rpc: rpc}
}

func (c *grpcClient) Authorize(ctx context.Context, kind domain.ResourceKind, action wire.ResourceAction, resourceID string, token string) (bool, error) {
	ctx = auth.WithAPIToken(ctx, token)
	resp, err := c.rpc.Authorize(ctx, &wire.AuthorizeRequest{
		Resource:       kind,
		ResourceAction: action,
		ResourceID:     resourceID,
	})
	if err != nil {
		return false, errors.Wrap(err, "authorization request failed")
	}
	return resp.OK, nil
}

// Memory is a stub Client for local development and tests: every request
// is allowed unless the resource id is denylisted via Deny.
type Memory struct {
	denied map[string]void
}

type void = struct{}

func NewMemory() *Memory {
	return &Memory{denied: make(map[string]void)}
}

func (m *Memory) Deny(resourceID string) {
	m.denied[resourceID] = void{}
}

func (m *Memory) Authorize(ctx context.Context, kind domain.ResourceKind, action wire.ResourceAction, resourceID string, token string) (bool, error) {
	_, denied := m.denied[resourceID]
	return !denied, nil
}
