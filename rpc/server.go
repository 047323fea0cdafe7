package rpc

import (
	grpclog "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc"

	"git.tatikoma.dev/corpix/notify/log"
)

// Authenticator is satisfied by auth.Internal and auth.Public.
type Authenticator interface {
	UnaryInterceptor() grpc.UnaryServerInterceptor
	StreamInterceptor() grpc.StreamServerInterceptor
}

func NewServer(a Authenticator, l log.Logger) *grpc.Server {
	logger := LoggerInterceptor(l)
	return grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpclog.UnaryServerInterceptor(logger),
			a.UnaryInterceptor(),
			ValidationUnaryServerInterceptor(),
			DefaultsUnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpclog.StreamServerInterceptor(logger),
			a.StreamInterceptor(),
			ValidationStreamServerInterceptor(),
			DefaultsStreamServerInterceptor(),
		),
	)
}
