package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	handlers "github.com/HYKY/hyky-services/internal/adapter/handler/http"
	"github.com/HYKY/hyky-services/internal/infrastructure/http/response"
	"github.com/HYKY/hyky-services/internal/infrastructure/metrics"
	"github.com/HYKY/hyky-services/pkg/logger"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const metricsPath = "/metrics"

// Server is the HTTP server of the API.
type Server struct {
	router  *echo.Echo
	server  *http.Server
	logger  *zap.Logger
	metrics *metrics.Metrics
	address string
}

// Config holds HTTP server settings.
type Config struct {
	Port    string
	Timeout int
	Debug   bool
}

// Routes carries the gate and the handlers mounted by RegisterRoutes.
type Routes struct {
	Gate echo.MiddlewareFunc
	Auth *handlers.AuthHandler
	Info *handlers.InfoHandler
}

// NewServer creates the echo instance with the common middleware stack.
func NewServer(cfg Config, zapLogger *zap.Logger, m *metrics.Metrics, responder response.Responder) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.Logger = logger.NewEchoZapLogger(zapLogger)
	e.HTTPErrorHandler = NewErrorHandler(zapLogger, responder)

	e.Pre(middleware.RemoveTrailingSlash())

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(zapLogger, metricsPath))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "hyky",
		Subsystem:  "http",
		Registerer: m.Registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == metricsPath
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "X-Token"},
	}))

	address := fmt.Sprintf(":%s", cfg.Port)
	timeout := time.Duration(cfg.Timeout) * time.Second

	server := &http.Server{
		Addr:         address,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  timeout,
	}

	return &Server{
		router:  e,
		server:  server,
		logger:  zapLogger,
		metrics: m,
		address: address,
	}
}

// Router returns the echo instance.
func (s *Server) Router() *echo.Echo {
	return s.router
}

// RegisterRoutes mounts the gate and every route.
func (s *Server) RegisterRoutes(routes Routes) {
	if routes.Gate != nil {
		s.router.Use(routes.Gate)
	}

	s.router.GET(metricsPath, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.metrics.Registry,
	}))

	info := routes.Info
	s.router.Any("/", info.Root)
	s.router.Match([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, "/api", info.API)
	s.router.Any("/api/v2", info.DeadEnd)

	// Login and validation answer both with and without the /api/v1 prefix.
	auth := routes.Auth
	for _, prefix := range []string{"", "/api/v1"} {
		g := s.router.Group(prefix)
		g.Match([]string{http.MethodGet, http.MethodPost}, "/auth", auth.Login)
		g.POST("/auth/validate", auth.Validate)
	}

	v1 := s.router.Group("/api/v1")
	v1.Any("/healthcheck", info.Healthcheck)
	v1.GET("/me", auth.Me)
	v1.GET("/me/activity", auth.Activity)
}

// Start serves until Stop is called. It returns http.ErrServerClosed after
// a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.address),
	)

	s.server.Handler = s.router
	return s.router.StartServer(s.server)
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}
