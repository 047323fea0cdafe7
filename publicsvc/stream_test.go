package publicsvc

import (
	"context"
	"io"

	"google.golang.org/grpc/metadata"

	"git.tatikoma.dev/corpix/notify/wire"
)

// fakeStream is a minimal wire.PublicNotificationService_ReadStreamGroupMessagesServer
// for exercising ReadStreamGroupMessages without a real gRPC transport.
type fakeStream struct {
	ctx context.Context
	in  chan *wire.ReadStreamGroupMessagesRequest
	out chan *wire.ReadStreamGroupMessagesResponse
}

func newFakeStream(ctx context.Context) *fakeStream {
	return &fakeStream{
		ctx: ctx,
		in:  make(chan *wire.ReadStreamGroupMessagesRequest, 16),
		out: make(chan *wire.ReadStreamGroupMessagesResponse, 16),
	}
}

func (s *fakeStream) Send(m *wire.ReadStreamGroupMessagesResponse) error {
	s.out <- m
	return nil
}

func (s *fakeStream) Recv() (*wire.ReadStreamGroupMessagesRequest, error) {
	m, ok := <-s.in
	if !ok {
		return nil, io.EOF
	}
	return m, nil
}

func (s *fakeStream) Context() context.Context            { return s.ctx }
func (s *fakeStream) SetHeader(metadata.MD) error          { return nil }
func (s *fakeStream) SendHeader(metadata.MD) error         { return nil }
func (s *fakeStream) SetTrailer(metadata.MD)               {}
func (s *fakeStream) SendMsg(m interface{}) error           { return nil }
func (s *fakeStream) RecvMsg(m interface{}) error           { return nil }
