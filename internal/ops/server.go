// Package ops serves the health and Prometheus endpoints of the indexer binaries.
package ops

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/feral-file/sei-marketplace-indexer/internal/logger"
)

const healthCheckTimeout = 3 * time.Second

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds the server configuration
type Config struct {
	Debug      bool
	ListenAddr string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	pinger     Pinger
	httpServer *http.Server
}

// New creates a new ops server. pinger may be nil.
func New(cfg Config, pinger Pinger) *Server {
	return &Server{
		config: cfg,
		pinger: pinger,
	}
}

// Handler builds the gin router
func (s *Server) Handler() http.Handler {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(Recovery())
	router.Use(Logger())

	router.GET("/healthz", s.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.config.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Starting ops server", zap.String("address", s.config.ListenAddr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down ops server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}

// GET /healthz
func (s *Server) healthCheck(c *gin.Context) {
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := s.pinger.Ping(ctx); err != nil {
			logger.WarnCtx(ctx, "Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
