// Package publicsvc implements the Public Notification Service:
// create_event_streaming_group, delete_event_streaming_group (reserved),
// and the bidirectional read_stream_group_messages delivery/ack protocol.
package publicsvc

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"git.tatikoma.dev/corpix/notify/authzclient"
	"git.tatikoma.dev/corpix/notify/bus"
	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/errors"
	"git.tatikoma.dev/corpix/notify/handler"
	"git.tatikoma.dev/corpix/notify/registryclient"
	"git.tatikoma.dev/corpix/notify/rpc/auth"
	"git.tatikoma.dev/corpix/notify/wire"
)

var _ wire.PublicNotificationServiceServer = (*Server)(nil)

type Server struct {
	registry registryclient.Client
	authz    authzclient.Client
	handler  handler.EventHandler
}

func New(registry registryclient.Client, authz authzclient.Client, h handler.EventHandler) *Server {
	return &Server{registry: registry, authz: authz, handler: h}
}

func tokenFromContext(ctx context.Context) (string, error) {
	token, ok := auth.TokenFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "authentication header required and was not found")
	}
	return token, nil
}

func (s *Server) CreateEventStreamingGroup(ctx context.Context, req *wire.CreateEventStreamingGroupRequest) (*wire.CreateEventStreamingGroupResponse, error) {
	if err := req.Resource.Validate(); err != nil {
		return nil, errors.RpcCode(err, codes.InvalidArgument, "invalid resource kind %s", req.Resource)
	}

	token, err := tokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.authz.Authorize(ctx, req.Resource, wire.ResourceActionRead, req.ResourceID, token)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error when authorizing request")
	}
	if !ok {
		return nil, status.Error(codes.PermissionDenied, "unsufficient permissions")
	}

	hierarchies, err := s.registry.GetResourceHierarchy(ctx, req.Resource, req.ResourceID)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error requesting resource hierarchy")
	}

	var hierarchy domain.Hierarchy
	if req.Resource != domain.ResourceKindProject {
		if len(hierarchies) == 0 {
			return nil, status.Error(codes.Internal, "no hierarchy found, cannot create query string")
		}
		hierarchy = hierarchies[0]
	}

	group, err := s.registry.CreateStreamGroup(ctx, req.Resource, req.ResourceID, domain.EventTypeAll, req.IncludeSubresource, token)
	if err != nil {
		return nil, status.Error(codes.Internal, "could not create stream group")
	}

	if err := s.handler.CreateStreamGroup(ctx, group.ID, hierarchy, req.Resource, req.ResourceID, req.IncludeSubresource); err != nil {
		return nil, status.Error(codes.Internal, "could not create stream group")
	}

	return &wire.CreateEventStreamingGroupResponse{StreamGroupID: group.ID}, nil
}

// DeleteEventStreamingGroup is reserved and not implemented. The reference
// panics here via an unimplemented stub; this returns Unimplemented instead.
func (s *Server) DeleteEventStreamingGroup(ctx context.Context, req *wire.DeleteEventStreamingGroupRequest) (*wire.DeleteEventStreamingGroupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "delete_event_streaming_group is not implemented")
}

func (s *Server) ReadStreamGroupMessages(stream wire.PublicNotificationService_ReadStreamGroupMessagesServer) error {
	ctx := stream.Context()
	token, err := tokenFromContext(ctx)
	if err != nil {
		return err
	}

	initial, err := stream.Recv()
	if err == io.EOF {
		return status.Error(codes.InvalidArgument, "init message required to initiate streaming")
	}
	if err != nil {
		return status.Error(codes.Internal, "error on stream handling")
	}
	if initial.StreamAction.Init == nil {
		return status.Error(codes.InvalidArgument, "an init message needs to be sent before any ack message")
	}

	group, err := s.registry.GetStreamGroup(ctx, initial.StreamAction.Init.StreamGroupID, token)
	if err != nil {
		return status.Error(codes.Internal, "internal error requesting stream group")
	}

	ok, err := s.authz.Authorize(ctx, group.Kind, wire.ResourceActionRead, group.ResourceID, token)
	if err != nil {
		return status.Error(codes.Internal, "internal error when authorizing request")
	}
	if !ok {
		return status.Error(codes.PermissionDenied, "not allowed to perform call")
	}

	streamHandler, err := s.handler.CreateEventStreamHandler(ctx, group.ID)
	if err != nil {
		return status.Error(codes.Internal, "could not create stream group handler")
	}

	d := &delivery{
		stream:  stream,
		handler: streamHandler,
		chunks:  make(map[string][]bus.Message),
		errs:    make(chan error, 10),
	}
	go d.runInput(ctx)
	return d.runOutput(ctx)
}

// delivery holds the per-connection state the input and output loops of
// read_stream_group_messages share: the ack map (chunk_id -> bus messages
// pulled for that chunk), a close flag, and a bounded channel the input
// loop uses to end the call on a protocol violation.
type delivery struct {
	stream  wire.PublicNotificationService_ReadStreamGroupMessagesServer
	handler handler.EventStreamHandler

	mu     sync.Mutex
	chunks map[string][]bus.Message

	closed atomic.Bool
	errs   chan error
}

func (d *delivery) takeChunk(chunkID string) ([]bus.Message, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	msgs, ok := d.chunks[chunkID]
	if ok {
		delete(d.chunks, chunkID)
	}
	return msgs, ok
}

func (d *delivery) putChunk(chunkID string, msgs []bus.Message) {
	d.mu.Lock()
	d.chunks[chunkID] = msgs
	d.mu.Unlock()
}

func (d *delivery) fail(err error) {
	select {
	case d.errs <- err:
	default:
	}
}

// runInput consumes client frames: Ack frames ack their referenced bus
// messages, a close=true frame sets the close flag, and any protocol
// violation (a second Init, an unknown chunk id, a decode error) ends the
// call through the error channel the output loop drains.
func (d *delivery) runInput(ctx context.Context) {
	for {
		req, err := d.stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			d.fail(status.Error(codes.Internal, "error reading from input stream"))
			return
		}

		switch {
		case req.StreamAction.Init != nil:
			d.fail(status.Error(codes.InvalidArgument, "init can only be used once in request"))
			return
		case req.StreamAction.Ack != nil:
			d.ack(ctx, req.StreamAction.Ack.ChunkIDs)
		}

		// The close flag is set only after this frame's acks have run, so
		// the output loop cannot end the call before they are done.
		if req.Close {
			d.closed.Store(true)
		}
	}
}

func (d *delivery) ack(ctx context.Context, chunkIDs []string) {
	for _, chunkID := range chunkIDs {
		msgs, ok := d.takeChunk(chunkID)
		if !ok {
			d.fail(status.Errorf(codes.InvalidArgument, "unknown ack chunk id %q", chunkID))
			return
		}
		for _, msg := range msgs {
			// A single message's ack failing is transient: the bus will
			// redeliver it, so it does not end the call.
			if err := msg.Ack(ctx); err != nil {
				errors.Log(err, "error acknowledging ack chunk %q", chunkID)
			}
		}
	}
}

// runOutput yields response chunks until the close flag is observed or an
// error (from either loop) ends the call.
func (d *delivery) runOutput(ctx context.Context) error {
	for !d.closed.Load() {
		select {
		case err := <-d.errs:
			return err
		default:
		}

		msgs, err := d.handler.GetStreamGroupMsgs(ctx)
		if err != nil {
			return status.Error(codes.Internal, "error reading from event system")
		}
		if len(msgs) == 0 {
			continue
		}

		chunkID := uuid.NewString()
		d.putChunk(chunkID, msgs)

		notifications := make([]domain.NotificationMessage, 0, len(msgs))
		for _, msg := range msgs {
			n, err := wire.DecodeNotification(msg.Payload())
			if err != nil {
				return status.Error(codes.Internal, "error decoding notification payload")
			}
			notifications = append(notifications, n)
		}

		if err := d.stream.Send(&wire.ReadStreamGroupMessagesResponse{
			Notifications: notifications,
			ChunkID:       chunkID,
		}); err != nil {
			return errors.Wrap(err, "failed to send response")
		}
	}
	return nil
}
