package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/HYKY/hyky-services/internal/adapter/handler/http"
	"github.com/HYKY/hyky-services/internal/adapter/repository"
	"github.com/HYKY/hyky-services/internal/config"
	"github.com/HYKY/hyky-services/internal/infrastructure/db"
	grpcserver "github.com/HYKY/hyky-services/internal/infrastructure/grpc"
	httpserver "github.com/HYKY/hyky-services/internal/infrastructure/http"
	"github.com/HYKY/hyky-services/internal/infrastructure/http/middleware"
	"github.com/HYKY/hyky-services/internal/infrastructure/http/response"
	"github.com/HYKY/hyky-services/internal/infrastructure/metrics"
	"github.com/HYKY/hyky-services/internal/usecase"
	"github.com/HYKY/hyky-services/pkg/messaging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout     = 10 * time.Second
	healthProbeInterval = 15 * time.Second
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), autoMigrate)
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run migrations before serving")

	return cmd
}

func runServe(ctx context.Context, autoMigrate bool) error {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Logger
	logger := cfg.Logger
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting services API",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
		zap.Bool("dev_mode", cfg.Service.DevMode),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Infrastructure
	infra, err := db.NewInfrastructure(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize infrastructure", zap.Error(err))
		return err
	}
	defer func() {
		if err := infra.Close(); err != nil {
			logger.Warn("Failed to close infrastructure", zap.Error(err))
		}
	}()

	if autoMigrate {
		if err := db.Migrate(infra.DB, logger); err != nil {
			return err
		}
	}

	// 4. Repositories and use cases
	repositories := repository.InitRepositories(infra.DB, infra.RedisClient, logger)
	m := metrics.New()
	useCases := usecase.SetupUseCases(logger, cfg, repositories, m, messaging.NewRedisBus(infra.RedisClient))

	// 5. HTTP server
	responder := response.Responder{DevMode: cfg.Service.DevMode}
	httpServer := httpserver.NewServer(httpserver.Config{
		Port:    cfg.Server.HTTP.Port,
		Timeout: cfg.Server.HTTP.Timeout,
		Debug:   cfg.Server.HTTP.Debug,
	}, logger, m, responder)

	httpServer.RegisterRoutes(httpserver.Routes{
		Gate: middleware.Gate(middleware.GateConfig{
			Paths:        cfg.Routes.Paths,
			Passthroughs: cfg.Routes.Passthroughs,
			TokenHeader:  cfg.Auth.TokenHeader,
			SecureMode:   cfg.Auth.SecureMode,
			TokenUseCase: useCases.Token,
			Responder:    responder,
			Logger:       logger,
			Metrics:      m,
		}),
		Auth: handlers.NewAuthHandler(logger, responder, cfg.Auth.TokenHeader, useCases.Auth, useCases.Token, useCases.AuditLog),
		Info: handlers.NewInfoHandler(responder, cfg.Service.Name, cfg.Service.Version),
	})

	// 6. gRPC server
	grpcServer := grpcserver.NewServer(grpcserver.Config{
		Port:    cfg.Server.GRPC.Port,
		Timeout: cfg.Server.GRPC.Timeout,
	}, logger)

	// 7. Serve
	errCh := make(chan error, 2)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- err
		}
	}()
	go grpcServer.WatchHealth(ctx, healthProbeInterval, infra.Ping)

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err = <-errCh:
		logger.Error("Server failed", zap.Error(err))
	}

	// 8. Graceful shutdown
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if stopErr := httpServer.Stop(shutdownCtx); stopErr != nil {
		logger.Error("Failed to stop HTTP server", zap.Error(stopErr))
	}
	grpcServer.Stop()

	logger.Info("Services API stopped")
	return err
}
