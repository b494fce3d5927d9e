package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/termhost/internal/api/http"
	"github.com/GriffinCanCode/termhost/internal/api/middleware"
	"github.com/GriffinCanCode/termhost/internal/api/ws"
	"github.com/GriffinCanCode/termhost/internal/events"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/config"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/logging"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/termhost/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/termhost/internal/providers/filesystem"
	"github.com/GriffinCanCode/termhost/internal/providers/terminal"
	"github.com/GriffinCanCode/termhost/internal/service"
)

const readHeaderTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router    *gin.Engine
	http      *http.Server
	registry  *service.Registry
	terminals *terminal.Manager
	hub       *events.Hub
	tracer    *tracing.Tracer
	logger    *logging.Logger
	config    *config.Config
	metrics   *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	logger.Info("Initializing termhost",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
	)

	// Metrics first, every component reports into it
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("termhost", logger)

	hub := events.NewHub(cfg.Events.Buffer, logger).WithMetrics(metrics)
	terminals := terminal.NewManager(terminalConfig(cfg.Terminal), logger).WithMetrics(metrics)

	registry := service.NewRegistry(logger).WithMetrics(metrics).WithTracer(tracer)
	if err := registerProviders(registry, cfg, terminals, hub, logger); err != nil {
		tracer.Close()
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(middleware.Logger(logger))
	router.Use(monitoring.Middleware(metrics))
	origins := middleware.NewOriginPolicy(cfg.Server.CORSOrigins)
	if origins.AllowsAny() {
		logger.Warn("Any browser origin may drive terminal sessions", zap.Strings("origins", cfg.Server.CORSOrigins))
	}
	router.Use(middleware.CORS(origins))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := api.NewHandlers(registry, terminals, hub, api.NewHandlerMetrics(metrics), logger)
	api.RegisterRoutes(router, handlers)

	wsHandler := ws.NewHandler(registry, hub, logger).WithMetrics(metrics).WithOrigins(origins)
	router.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(gzhttp.GzipHandler(metrics.Handler())))

	logger.Info("Server initialized successfully")

	return &Server{
		router:    router,
		registry:  registry,
		terminals: terminals,
		hub:       hub,
		tracer:    tracer,
		logger:    logger,
		config:    cfg,
		metrics:   metrics,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until Shutdown is called.
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then closes every terminal session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var httpErr error
	if s.http != nil {
		httpErr = s.http.Shutdown(ctx)
		if httpErr != nil {
			s.logger.Error("HTTP shutdown incomplete", zap.Error(httpErr))
		}
	}

	return errors.Join(httpErr, s.Close())
}

// Close releases sessions and flushes logs.
func (s *Server) Close() error {
	err := s.terminals.CloseAll()
	if err != nil {
		s.logger.Error("Failed to close terminal sessions", zap.Error(err))
	} else {
		s.logger.Info("Closed terminal sessions")
	}

	s.tracer.Close()
	_ = s.logger.Sync()
	return err
}

func terminalConfig(cfg config.TerminalConfig) terminal.Config {
	tc := terminal.DefaultConfig()
	if cfg.Shell != "" {
		tc.Shell = cfg.Shell
	}
	if cfg.Term != "" {
		tc.Term = cfg.Term
	}
	if cfg.ReadBuffer > 0 {
		tc.ReadBufferSize = cfg.ReadBuffer
	}
	tc.WorkingDir = cfg.WorkingDir
	tc.ResizeEnabled = cfg.ResizeEnabled
	tc.KillOnClose = cfg.KillOnClose
	return tc
}

func registerProviders(
	registry *service.Registry,
	cfg *config.Config,
	terminals *terminal.Manager,
	hub *events.Hub,
	logger *logging.Logger,
) error {
	providers := []service.Provider{
		terminal.NewProvider(terminals, hub),
		filesystem.NewProvider(filesystem.Config{
			MaxDepth: cfg.Filesystem.MaxDepth,
			Ignore:   cfg.Filesystem.Ignore,
		}, logger),
	}

	for _, p := range providers {
		if err := registry.Register(p); err != nil {
			return fmt.Errorf("failed to register %s provider: %w", p.Definition().ID, err)
		}
	}
	return nil
}
