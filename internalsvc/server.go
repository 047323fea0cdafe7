// Package internalsvc implements the internal event emitter: a single
// EmitEvent RPC, authenticated by a shared secret checked in the gRPC
// auth interceptor, that fans each relation in the request out to the
// Event Handler.
package internalsvc

import (
	"context"

	"google.golang.org/grpc/codes"

	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/errors"
	"git.tatikoma.dev/corpix/notify/handler"
	"git.tatikoma.dev/corpix/notify/wire"
)

var _ wire.InternalEventEmitterServiceServer = (*Server)(nil)

type Server struct {
	handler handler.EventHandler
}

func New(h handler.EventHandler) *Server {
	return &Server{handler: h}
}

func (s *Server) EmitEvent(ctx context.Context, req *wire.EmitEventRequest) (*wire.EmitEventResponse, error) {
	if err := req.Resource.Validate(); err != nil {
		return nil, errors.RpcCode(err, codes.InvalidArgument, "invalid resource kind %s", req.Resource)
	}

	for _, relation := range req.Relations {
		ev := domain.Event{
			Kind:       req.Resource,
			ResourceID: req.ResourceID,
			Type:       req.EventType,
			Relation:   relation,
		}
		if err := s.handler.RegisterEvent(ctx, ev); err != nil {
			return nil, errors.Rpc(err, "failed to register event for resource %s", req.ResourceID)
		}
	}

	return &wire.EmitEventResponse{}, nil
}
