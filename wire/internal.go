package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"git.tatikoma.dev/corpix/notify/domain"
)

// EmitEventRequest carries one or more relation entries for the same
// resource/event-type pair; the handler registers one bus event per
// relation.
type EmitEventRequest struct {
	Resource   domain.ResourceKind `json:"resource"`
	ResourceID string              `json:"resource_id"`
	EventType  domain.EventType    `json:"event_type"`
	Relations  []domain.Relation   `json:"relations"`
}

func (r *EmitEventRequest) Validate() error {
	if r.ResourceID == "" {
		return status.Error(codes.InvalidArgument, "resource_id is required")
	}
	return nil
}

type EmitEventResponse struct{}

// InternalEventEmitterServiceServer is implemented by internalsvc.Server.
type InternalEventEmitterServiceServer interface {
	EmitEvent(context.Context, *EmitEventRequest) (*EmitEventResponse, error)
}

// InternalEventEmitterServiceClient is implemented by the generated client
// stub below; nothing else in this repository calls the internal emitter
// over gRPC, but the interface exists so callers can be written against it.
type InternalEventEmitterServiceClient interface {
	EmitEvent(ctx context.Context, in *EmitEventRequest, opts ...grpc.CallOption) (*EmitEventResponse, error)
}

type internalEventEmitterServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewInternalEventEmitterServiceClient(cc grpc.ClientConnInterface) InternalEventEmitterServiceClient {
	return &internalEventEmitterServiceClient{cc}
}

func (c *internalEventEmitterServiceClient) EmitEvent(ctx context.Context, in *EmitEventRequest, opts ...grpc.CallOption) (*EmitEventResponse, error) {
	out := new(EmitEventResponse)
	err := c.cc.Invoke(ctx, "/notify.internal.v1.InternalEventEmitterService/EmitEvent", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterInternalEventEmitterServiceServer(s grpc.ServiceRegistrar, srv InternalEventEmitterServiceServer) {
	s.RegisterService(&internalEventEmitterServiceDesc, srv)
}

func _InternalEventEmitterService_EmitEvent_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EmitEventRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InternalEventEmitterServiceServer).EmitEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/notify.internal.v1.InternalEventEmitterService/EmitEvent",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(InternalEventEmitterServiceServer).EmitEvent(ctx, req.(*EmitEventRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var internalEventEmitterServiceDesc = grpc.ServiceDesc{
	ServiceName: "notify.internal.v1.InternalEventEmitterService",
	HandlerType: (*InternalEventEmitterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "EmitEvent",
			Handler:    _InternalEventEmitterService_EmitEvent_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notify/internal/v1/internal.proto",
}
