package wire

import (
	"context"

	"google.golang.org/grpc"

	"git.tatikoma.dev/corpix/notify/domain"
)

type ResourceAction int32

const (
	ResourceActionUnspecified ResourceAction = iota
	ResourceActionRead
	ResourceActionWrite
)

type AuthorizeRequest struct {
	Resource       domain.ResourceKind `json:"resource"`
	ResourceAction ResourceAction      `json:"resource_action"`
	ResourceID     string              `json:"resource_id"`
}

type AuthorizeResponse struct {
	OK bool `json:"ok"`
}

// AuthorizationServiceClient is the opaque upstream the Authorization
// Client wraps. There is no server side here, only a thin Invoke-based
// stub matching what protoc-gen-go-grpc would generate for it.
type AuthorizationServiceClient interface {
	Authorize(ctx context.Context, in *AuthorizeRequest, opts ...grpc.CallOption) (*AuthorizeResponse, error)
}

type authorizationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthorizationServiceClient(cc grpc.ClientConnInterface) AuthorizationServiceClient {
	return &authorizationServiceClient{cc}
}

func (c *authorizationServiceClient) Authorize(ctx context.Context, in *AuthorizeRequest, opts ...grpc.CallOption) (*AuthorizeResponse, error) {
	out := new(AuthorizeResponse)
	if err := c.cc.Invoke(ctx, "/notify.authz.v1.AuthorizationService/Authorize", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
