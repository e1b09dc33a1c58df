package grpc

import (
	"context"
	"net"
	"sync"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/dmitrijs2005/localswap/internal/server/transport"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address   string
	services  transport.Services
	logger    logging.Logger
	jwtSecret []byte
	health    *health.Server

	// stopping is closed when shutdown begins so open streams can end
	// and GracefulStop can return.
	stopping chan struct{}
	stopOnce sync.Once
}

func NewGRPCServer(a string, l logging.Logger, svc transport.Services, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		services:  svc,
		jwtSecret: []byte(secretKey),
		health:    health.NewServer(),
		stopping:  make(chan struct{}),
	}, nil
}

// newServer builds a grpc.Server with the LocalSwap and health services
// and the access token interceptors installed.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.MaxRecvMsgSize(api.MaxMessageSize),
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamAccessTokenInterceptor),
	)

	api.RegisterLocalSwapServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		s.stopOnce.Do(func() { close(s.stopping) })
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
