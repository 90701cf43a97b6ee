// Package grpc serves the operational gRPC endpoints: health and reflection.
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/HYKY/hyky-services/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall "".
const ServiceName = "hyky.services"

// Probe reports whether the backing stores are usable.
type Probe func(ctx context.Context) error

// Server is the gRPC server.
type Server struct {
	server  *grpc.Server
	health  *health.Server
	logger  *zap.Logger
	address string
	timeout time.Duration
}

// Config holds gRPC server settings.
type Config struct {
	Port string
	// Timeout bounds each health probe, in seconds.
	Timeout int
}

// NewServer creates the gRPC server with health and reflection registered.
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(zapLogger)),
		grpc.ChainStreamInterceptor(logger.NewGrpcStreamServerInterceptor(zapLogger)),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(server)

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Server{
		server:  server,
		health:  healthServer,
		logger:  zapLogger,
		address: fmt.Sprintf(":%s", cfg.Port),
		timeout: timeout,
	}
}

// Start listens on the configured port and serves until Stop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC: %w", err)
	}
	return s.Serve(listener)
}

// Serve serves on lis until Stop.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("Starting gRPC server",
		zap.String("address", lis.Addr().String()),
	)
	return s.server.Serve(lis)
}

// WatchHealth runs probe every interval and reports the result as the
// status of ServiceName. It returns when ctx is done.
func (s *Server) WatchHealth(ctx context.Context, interval time.Duration, probe Probe) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	serving := true
	for {
		probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := probe(probeCtx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		if (err == nil) != serving {
			serving = err == nil
			s.logger.Warn("Health status changed",
				zap.String("service", ServiceName),
				zap.String("status", status.String()),
				zap.Error(err),
			)
		}
		s.health.SetServingStatus(ServiceName, status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop marks every service as not serving and drains open calls.
func (s *Server) Stop() {
	s.logger.Info("Stopping gRPC server")
	s.health.Shutdown()
	s.server.GracefulStop()
	s.logger.Info("gRPC server stopped")
}
