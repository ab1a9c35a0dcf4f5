package jwtinspect

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// ErrMultipleAuthMetadata is returned when a call carries more than one
// authorization metadata entry.
var ErrMultipleAuthMetadata = errors.New("multiple authorization metadata entries are not allowed")

// MetadataTokenExtractor reads a bearer token from the "authorization" key of
// the incoming gRPC metadata. gRPC lower-cases metadata keys, so only the
// lower-case key is consulted.
func MetadataTokenExtractor(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", nil
	}

	values := md.Get("authorization")
	switch len(values) {
	case 0:
		return "", nil
	case 1:
		return parseBearer(values[0])
	default:
		return "", ErrMultipleAuthMetadata
	}
}

// GRPCErrorHandler converts a refusal into the error returned to the client.
type GRPCErrorHandler func(err error) error

// DefaultGRPCErrorHandler maps refusals onto status codes: Unauthenticated
// for missing or rejected tokens, InvalidArgument for malformed metadata and
// Internal otherwise.
func DefaultGRPCErrorHandler(err error) error {
	var rejected *RejectedError
	switch {
	case errors.Is(err, ErrTokenMissing):
		return status.Error(codes.Unauthenticated, "Token is missing.")
	case errors.As(err, &rejected):
		return status.Error(codes.Unauthenticated, rejected.Error())
	case errors.Is(err, ErrBadAuthHeader), errors.Is(err, ErrMultipleAuthMetadata):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "Something went wrong while checking the token.")
	}
}

func (m *Middleware) checkCall(ctx context.Context, method string) (context.Context, error) {
	token, err := MetadataTokenExtractor(ctx)
	if err != nil {
		m.logger.Warn("failed to extract token from metadata", "error", err, "method", method)
		return nil, fmt.Errorf("error extracting token: %w", err)
	}

	admitted, err := m.admit(ctx, token, "method", method)
	if err != nil {
		return nil, err
	}
	if admitted == nil {
		return ctx, nil
	}
	return admitted, nil
}

// UnaryServerInterceptor returns an interceptor applying the middleware's
// checks to unary calls. The token is read with MetadataTokenExtractor and
// refusals go through onError, or DefaultGRPCErrorHandler when it is nil.
//
// Example:
//
//	server := grpc.NewServer(grpc.UnaryInterceptor(mw.UnaryServerInterceptor(nil)))
func (m *Middleware) UnaryServerInterceptor(onError GRPCErrorHandler) grpc.UnaryServerInterceptor {
	if onError == nil {
		onError = DefaultGRPCErrorHandler
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, err := m.checkCall(ctx, info.FullMethod)
		if err != nil {
			return nil, onError(err)
		}
		return handler(ctx, req)
	}
}

// StreamServerInterceptor is UnaryServerInterceptor for streaming calls.
// The handler sees the identity through the stream's context.
func (m *Middleware) StreamServerInterceptor(onError GRPCErrorHandler) grpc.StreamServerInterceptor {
	if onError == nil {
		onError = DefaultGRPCErrorHandler
	}

	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := m.checkCall(ss.Context(), info.FullMethod)
		if err != nil {
			return onError(err)
		}
		return handler(srv, &serverStream{ServerStream: ss, ctx: ctx})
	}
}

type serverStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *serverStream) Context() context.Context {
	return s.ctx
}
