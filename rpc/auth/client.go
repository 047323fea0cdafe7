package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// OutgoingContext attaches key=token to ctx's outgoing gRPC metadata,
// for forwarding a caller's token to an upstream service.
func OutgoingContext(ctx context.Context, key, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, key, token)
}

// WithAPIToken forwards a caller's api-token to an upstream RPC (Registry,
// Authorization).
func WithAPIToken(ctx context.Context, token string) context.Context {
	return OutgoingContext(ctx, APITokenMetadataKey, token)
}

// WithInternalToken attaches the shared internal secret to an outgoing
// call to the internal event emitter. Nothing in this repository calls it.
func WithInternalToken(ctx context.Context, token string) context.Context {
	return OutgoingContext(ctx, InternalTokenMetadataKey, token)
}
