package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"git.tatikoma.dev/corpix/notify/domain"
)

type CreateEventStreamingGroupRequest struct {
	Resource           domain.ResourceKind `json:"resource"`
	ResourceID         string              `json:"resource_id"`
	IncludeSubresource bool                `json:"include_subresource"`
}

func (r *CreateEventStreamingGroupRequest) Validate() error {
	if r.ResourceID == "" {
		return status.Error(codes.InvalidArgument, "resource_id is required")
	}
	return nil
}

type CreateEventStreamingGroupResponse struct {
	StreamGroupID string `json:"stream_group_id"`
}

type DeleteEventStreamingGroupRequest struct {
	StreamGroupID string `json:"stream_group_id"`
}

func (r *DeleteEventStreamingGroupRequest) Validate() error {
	if r.StreamGroupID == "" {
		return status.Error(codes.InvalidArgument, "stream_group_id is required")
	}
	return nil
}

type DeleteEventStreamingGroupResponse struct{}

// InitAction is the first inbound frame on a read_stream_group_messages
// call, naming the stream group to attach to.
type InitAction struct {
	StreamGroupID string `json:"stream_group_id"`
}

// AckAction acknowledges one or more previously delivered chunks.
type AckAction struct {
	ChunkIDs []string `json:"ack_chunk_id"`
}

// StreamAction is a sum type: exactly one of Init/Ack is set, except on a
// close=true frame which may carry neither.
type StreamAction struct {
	Init *InitAction `json:"init,omitempty"`
	Ack  *AckAction  `json:"ack,omitempty"`
}

type ReadStreamGroupMessagesRequest struct {
	Close        bool         `json:"close"`
	StreamAction StreamAction `json:"stream_action"`
}

type ReadStreamGroupMessagesResponse struct {
	Notifications []domain.NotificationMessage `json:"notification"`
	ChunkID       string                       `json:"ack_chunk_id"`
}

// PublicNotificationServiceServer is implemented by publicsvc.Server.
type PublicNotificationServiceServer interface {
	CreateEventStreamingGroup(context.Context, *CreateEventStreamingGroupRequest) (*CreateEventStreamingGroupResponse, error)
	DeleteEventStreamingGroup(context.Context, *DeleteEventStreamingGroupRequest) (*DeleteEventStreamingGroupResponse, error)
	ReadStreamGroupMessages(PublicNotificationService_ReadStreamGroupMessagesServer) error
}

// PublicNotificationService_ReadStreamGroupMessagesServer is the
// server-side view of the bidirectional stream.
type PublicNotificationService_ReadStreamGroupMessagesServer interface {
	Send(*ReadStreamGroupMessagesResponse) error
	Recv() (*ReadStreamGroupMessagesRequest, error)
	grpc.ServerStream
}

type publicNotificationServiceReadStreamGroupMessagesServer struct {
	grpc.ServerStream
}

func (s *publicNotificationServiceReadStreamGroupMessagesServer) Send(m *ReadStreamGroupMessagesResponse) error {
	return s.ServerStream.SendMsg(m)
}

func (s *publicNotificationServiceReadStreamGroupMessagesServer) Recv() (*ReadStreamGroupMessagesRequest, error) {
	m := new(ReadStreamGroupMessagesRequest)
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// PublicNotificationServiceClient is implemented by the generated client
// stub below.
type PublicNotificationServiceClient interface {
	CreateEventStreamingGroup(ctx context.Context, in *CreateEventStreamingGroupRequest, opts ...grpc.CallOption) (*CreateEventStreamingGroupResponse, error)
	DeleteEventStreamingGroup(ctx context.Context, in *DeleteEventStreamingGroupRequest, opts ...grpc.CallOption) (*DeleteEventStreamingGroupResponse, error)
	ReadStreamGroupMessages(ctx context.Context, opts ...grpc.CallOption) (PublicNotificationService_ReadStreamGroupMessagesClient, error)
}

type PublicNotificationService_ReadStreamGroupMessagesClient interface {
	Send(*ReadStreamGroupMessagesRequest) error
	Recv() (*ReadStreamGroupMessagesResponse, error)
	grpc.ClientStream
}

type publicNotificationServiceReadStreamGroupMessagesClient struct {
	grpc.ClientStream
}

func (c *publicNotificationServiceReadStreamGroupMessagesClient) Send(m *ReadStreamGroupMessagesRequest) error {
	return c.ClientStream.SendMsg(m)
}

func (c *publicNotificationServiceReadStreamGroupMessagesClient) Recv() (*ReadStreamGroupMessagesResponse, error) {
	m := new(ReadStreamGroupMessagesResponse)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type publicNotificationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPublicNotificationServiceClient(cc grpc.ClientConnInterface) PublicNotificationServiceClient {
	return &publicNotificationServiceClient{cc}
}

func (c *publicNotificationServiceClient) CreateEventStreamingGroup(ctx context.Context, in *CreateEventStreamingGroupRequest, opts ...grpc.CallOption) (*CreateEventStreamingGroupResponse, error) {
	out := new(CreateEventStreamingGroupResponse)
	if err := c.cc.Invoke(ctx, "/notify.public.v1.PublicNotificationService/CreateEventStreamingGroup", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *publicNotificationServiceClient) DeleteEventStreamingGroup(ctx context.Context, in *DeleteEventStreamingGroupRequest, opts ...grpc.CallOption) (*DeleteEventStreamingGroupResponse, error) {
	out := new(DeleteEventStreamingGroupResponse)
	if err := c.cc.Invoke(ctx, "/notify.public.v1.PublicNotificationService/DeleteEventStreamingGroup", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *publicNotificationServiceClient) ReadStreamGroupMessages(ctx context.Context, opts ...grpc.CallOption) (PublicNotificationService_ReadStreamGroupMessagesClient, error) {
	stream, err := c.cc.NewStream(ctx, &publicNotificationServiceDesc.Streams[0], "/notify.public.v1.PublicNotificationService/ReadStreamGroupMessages", opts...)
	if err != nil {
		return nil, err
	}
	return &publicNotificationServiceReadStreamGroupMessagesClient{stream}, nil
}

func RegisterPublicNotificationServiceServer(s grpc.ServiceRegistrar, srv PublicNotificationServiceServer) {
	s.RegisterService(&publicNotificationServiceDesc, srv)
}

func _PublicNotificationService_CreateEventStreamingGroup_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateEventStreamingGroupRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicNotificationServiceServer).CreateEventStreamingGroup(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/notify.public.v1.PublicNotificationService/CreateEventStreamingGroup",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicNotificationServiceServer).CreateEventStreamingGroup(ctx, req.(*CreateEventStreamingGroupRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PublicNotificationService_DeleteEventStreamingGroup_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteEventStreamingGroupRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PublicNotificationServiceServer).DeleteEventStreamingGroup(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/notify.public.v1.PublicNotificationService/DeleteEventStreamingGroup",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PublicNotificationServiceServer).DeleteEventStreamingGroup(ctx, req.(*DeleteEventStreamingGroupRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PublicNotificationService_ReadStreamGroupMessages_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(PublicNotificationServiceServer).ReadStreamGroupMessages(&publicNotificationServiceReadStreamGroupMessagesServer{stream})
}

var publicNotificationServiceDesc = grpc.ServiceDesc{
	ServiceName: "notify.public.v1.PublicNotificationService",
	HandlerType: (*PublicNotificationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateEventStreamingGroup",
			Handler:    _PublicNotificationService_CreateEventStreamingGroup_Handler,
		},
		{
			MethodName: "DeleteEventStreamingGroup",
			Handler:    _PublicNotificationService_DeleteEventStreamingGroup_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ReadStreamGroupMessages",
			Handler:       _PublicNotificationService_ReadStreamGroupMessages_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "notify/public/v1/public.proto",
}
