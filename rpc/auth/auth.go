// Package auth implements the two authentication models the notification
// gateway exposes: a shared-secret check for the internal event emitter and
// an opaque bearer token, forwarded to the Authorization client, for public
// subscribers.
//
// Both models reuse the same gRPC interceptor shape: extract a header from
// incoming metadata, reject early on absence, and either verify it directly
// (internal) or stash it on the context for the handler to forward
// (public). On a stream that passes the check, grpc.ServerStream is wrapped
// so the handler observes the enriched context via ss.Context().
package auth

import (
	"context"
	"crypto/subtle"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	InternalTokenMetadataKey = "internal-token"
	APITokenMetadataKey      = "api-token"
)

type apiTokenContextKey struct{}

// TokenFromContext returns the api-token a public interceptor attached to
// ctx, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(apiTokenContextKey{}).(string)
	return tok, ok
}

// ContextWithAPIToken attaches token the same way Public's interceptor
// would, for callers that invoke a handler directly without going through
// the gRPC interceptor chain.
func ContextWithAPIToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, apiTokenContextKey{}, token)
}

func tokenFromIncomingContext(ctx context.Context, key string) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Errorf(codes.Unauthenticated, "missing metadata")
	}
	values := md[key]
	if len(values) == 0 || values[0] == "" {
		return "", status.Errorf(codes.Unauthenticated, "missing %s", key)
	}
	return values[0], nil
}

type streamWithCtx struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *streamWithCtx) Context() context.Context { return s.ctx }

// Internal authenticates the internal event emitter with a fixed shared
// secret compared in constant time.
type Internal struct {
	token string
}

func NewInternal(token string) *Internal {
	return &Internal{token: token}
}

func (a *Internal) authenticate(ctx context.Context) (context.Context, error) {
	token, err := tokenFromIncomingContext(ctx, InternalTokenMetadataKey)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
		return nil, status.Errorf(codes.PermissionDenied, "invalid internal token")
	}
	return ctx, nil
}

func (a *Internal) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx, err := a.authenticate(ctx)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func (a *Internal) StreamInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := a.authenticate(ss.Context())
		if err != nil {
			return err
		}
		return handler(srv, &streamWithCtx{ServerStream: ss, ctx: ctx})
	}
}

// Public extracts a caller-provided api-token and makes it available to
// handlers via TokenFromContext. It does not itself decide allow/deny;
// the decision is request-specific (resource, action, id) and is made by
// the handler calling out to the Authorization client.
type Public struct{}

func NewPublic() *Public {
	return &Public{}
}

func (a *Public) authenticate(ctx context.Context) (context.Context, error) {
	token, err := tokenFromIncomingContext(ctx, APITokenMetadataKey)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, apiTokenContextKey{}, token), nil
}

func (a *Public) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx, err := a.authenticate(ctx)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func (a *Public) StreamInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := a.authenticate(ss.Context())
		if err != nil {
			return err
		}
		return handler(srv, &streamWithCtx{ServerStream: ss, ctx: ctx})
	}
}
