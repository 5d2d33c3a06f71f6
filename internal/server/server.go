package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osa911/contactform/internal/api/handlers"
	"github.com/osa911/contactform/internal/config"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/ratelimit"
	"github.com/osa911/contactform/internal/server/routes"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewServer creates a new server instance with every route registered
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Contact == nil {
		return nil, errors.New("contact service is required")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	logger := logging.GetGlobalLogger()
	routes.SetupGlobalMiddleware(router, routes.GlobalConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Development:    !cfg.IsProduction(),
		LogRequests:    cfg.LogRequests,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		GlobalRPS:      cfg.GlobalRateRPS,
		GlobalBurst:    cfg.GlobalRateBurst,
	}, logger, deps.Metrics)

	var pinger handlers.Pinger
	if p, ok := deps.Store.(ratelimit.Pinger); ok {
		pinger = p
	}

	routes.Setup(router, &routes.Handlers{
		Contact: handlers.NewContactHandler(deps.Contact, cfg.CDNIPHeader),
		Health:  handlers.NewHealthHandler(pinger),
		Version: handlers.NewVersionHandler(),
	}, deps.Gatherer)

	return &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Contact API listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down contact API")
	return s.http.Shutdown(ctx)
}
