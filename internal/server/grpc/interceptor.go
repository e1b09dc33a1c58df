package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/server/auth"
	"github.com/dmitrijs2005/localswap/internal/server/transport"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods can be called without a token.
var publicMethods = map[string]bool{
	api.FullMethod(api.MethodCatalog):     true,
	api.FullMethod(api.MethodNearbyItems): true,
	api.FullMethod(api.MethodGetItem):     true,
}

func requiresAuth(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, "/"+api.ServiceName+"/") && !publicMethods[fullMethod]
}

// tokenFromMetadata reads the access_token entry, or a bearer
// authorization header.
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 && values[0] != "" {
		return values[0]
	}
	if values := md.Get("authorization"); len(values) > 0 {
		if token, ok := strings.CutPrefix(values[0], "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return ""
}

// authenticate returns ctx with the caller's user id attached.
func (s *GRPCServer) authenticate(ctx context.Context) (context.Context, error) {
	accessToken := tokenFromMetadata(ctx)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		_, _, msg, _ := transport.Describe(err)
		return nil, status.Error(codes.Unauthenticated, msg)
	}

	return transport.WithUserID(ctx, userID), nil
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if requiresAuth(info.FullMethod) {
		var err error
		ctx, err = s.authenticate(ctx)
		if err != nil {
			return nil, err
		}
	}

	return handler(ctx, req)
}

type authenticatedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (a *authenticatedStream) Context() context.Context {
	return a.ctx
}

func (s *GRPCServer) streamAccessTokenInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {

	if requiresAuth(info.FullMethod) {
		ctx, err := s.authenticate(ss.Context())
		if err != nil {
			return err
		}
		ss = &authenticatedStream{ServerStream: ss, ctx: ctx}
	}

	return handler(srv, ss)
}
