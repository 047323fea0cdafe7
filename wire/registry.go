package wire

import (
	"context"

	"google.golang.org/grpc"

	"git.tatikoma.dev/corpix/notify/domain"
)

type CreateStreamGroupRequest struct {
	Resource           domain.ResourceKind `json:"resource_type"`
	ResourceID         string              `json:"resource_id"`
	NotifyOnSubResource bool               `json:"notify_on_sub_resource"`
	EventType          domain.EventType    `json:"event_type"`
	Token              string              `json:"token"`
}

type StreamGroupMessage struct {
	ID                 string              `json:"id"`
	Resource           domain.ResourceKind `json:"resource_type"`
	ResourceID         string              `json:"resource_id"`
	NotifyOnSubResource bool               `json:"notify_on_sub_resource"`
	EventType          domain.EventType    `json:"event_type"`
}

type CreateStreamGroupResponse struct {
	StreamGroup StreamGroupMessage `json:"stream_group"`
}

type GetStreamGroupRequest struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type GetStreamGroupResponse struct {
	StreamGroup StreamGroupMessage `json:"stream_group"`
}

type GetResourceHierarchyRequest struct {
	Resource   domain.ResourceKind `json:"resource_type"`
	ResourceID string              `json:"resource_id"`
}

type HierarchyMessage struct {
	ProjectID           string `json:"project_id"`
	CollectionID        string `json:"collection_id"`
	SharedObjectID      string `json:"shared_object_id"`
	SharedObjectGroupID string `json:"shared_object_group_id"`
}

type GetResourceHierarchyResponse struct {
	Hierarchies []HierarchyMessage `json:"hierarchies"`
}

// RegistryServiceClient is the opaque upstream the Registry Client wraps:
// minting and resolving stream groups, and resolving a resource's ancestor
// chain. There is no server side here, only a thin Invoke-based stub
// matching what protoc-gen-go-grpc would generate for it.
type RegistryServiceClient interface {
	CreateStreamGroup(ctx context.Context, in *CreateStreamGroupRequest, opts ...grpc.CallOption) (*CreateStreamGroupResponse, error)
	GetStreamGroup(ctx context.Context, in *GetStreamGroupRequest, opts ...grpc.CallOption) (*GetStreamGroupResponse, error)
	GetResourceHierarchy(ctx context.Context, in *GetResourceHierarchyRequest, opts ...grpc.CallOption) (*GetResourceHierarchyResponse, error)
}

type registryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRegistryServiceClient(cc grpc.ClientConnInterface) RegistryServiceClient {
	return &registryServiceClient{cc}
}

func (c *registryServiceClient) CreateStreamGroup(ctx context.Context, in *CreateStreamGroupRequest, opts ...grpc.CallOption) (*CreateStreamGroupResponse, error) {
	out := new(CreateStreamGroupResponse)
	if err := c.cc.Invoke(ctx, "/notify.registry.v1.RegistryService/CreateStreamGroup", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryServiceClient) GetStreamGroup(ctx context.Context, in *GetStreamGroupRequest, opts ...grpc.CallOption) (*GetStreamGroupResponse, error) {
	out := new(GetStreamGroupResponse)
	if err := c.cc.Invoke(ctx, "/notify.registry.v1.RegistryService/GetStreamGroup", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registryServiceClient) GetResourceHierarchy(ctx context.Context, in *GetResourceHierarchyRequest, opts ...grpc.CallOption) (*GetResourceHierarchyResponse, error) {
	out := new(GetResourceHierarchyResponse)
	if err := c.cc.Invoke(ctx, "/notify.registry.v1.RegistryService/GetResourceHierarchy", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
