package rpc

import (
	"context"
	"fmt"
	"time"

	grpclog "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/backoff"
	"google.golang.org/grpc/credentials/insecure"

	"git.tatikoma.dev/corpix/notify/log"
)

// DefaultCallTimeout bounds an outbound unary call whose context carries no
// deadline of its own.
const DefaultCallTimeout = 5 * time.Second

func defaultDeadlineUnaryClientInterceptor(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCallTimeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewClientConn(l log.Logger, host string, port int) (*grpc.ClientConn, error) {
	return grpc.NewClient(
		fmt.Sprintf("%s:%d", host, port),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDisableServiceConfig(),
		grpc.WithChainUnaryInterceptor(defaultDeadlineUnaryClientInterceptor, grpclog.UnaryClientInterceptor(
			LoggerInterceptor(l),
			grpclog.WithLogOnEvents(grpclog.StartCall, grpclog.FinishCall),
		)),
		grpc.WithDefaultCallOptions(grpc.WaitForReady(true)),
		grpc.WithConnectParams(grpc.ConnectParams{
			Backoff: backoff.Config{
				BaseDelay:  1 * time.Second,
				Multiplier: 1.5,
				Jitter:     0.2,
				MaxDelay:   10 * time.Second,
			},
			MinConnectTimeout: 20 * time.Second,
		}),
	)
}
