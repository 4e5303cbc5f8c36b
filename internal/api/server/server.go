package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"transcribe-mate/internal/api/errors"
	"transcribe-mate/internal/api/middleware"
	"transcribe-mate/internal/api/v1/dto"
	v1routes "transcribe-mate/internal/api/v1/routes"
	"transcribe-mate/internal/api/v1/services"
	"transcribe-mate/internal/app/api"
)

// Config represents API server configuration
type Config struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string

	// FrontendURL is the only origin admitted by CORS
	FrontendURL string
	MaxUploadMB int64
}

// Backends are the providers behind the API
type Backends struct {
	Transcriber     api.Transcriber
	Cleaner         api.Cleaner
	DefaultPrompt   string
	TranscriberName string
	CleanerName     string
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	metrics    *middleware.Metrics
	logger     *zap.Logger
}

// NewServer creates a new API server
func NewServer(config Config, backends Backends, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	switch config.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	metrics := middleware.NewMetrics()
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(metrics.Middleware())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(config.FrontendURL)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:      "healthy",
			Timestamp:   time.Now().Unix(),
			Transcriber: backends.TranscriberName,
			Cleaner:     backends.CleanerName,
		})
	})
	router.GET("/metrics", metrics.Handler())

	serviceContainer := &v1routes.ServiceContainer{
		TranscriptionService: services.NewTranscriptionService(backends.Transcriber, metrics, logger),
		CleaningService:      services.NewCleaningService(backends.Cleaner, backends.DefaultPrompt, metrics, logger),
		MaxUploadMB:          config.MaxUploadMB,
	}
	v1routes.RegisterRoutes(router.Group("/api"), serviceContainer)

	router.NoRoute(func(c *gin.Context) {
		middleware.HandleError(c, errors.NewNotFoundError("Route"))
	})

	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		metrics:    metrics,
		logger:     logger,
	}
}

// Start serves until the server is shut down. It returns nil after a
// graceful Shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.httpServer.Addr),
		zap.String("environment", s.config.Environment),
		zap.String("frontend_url", s.config.FrontendURL),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start server", zap.Error(err))
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *middleware.Metrics {
	return s.metrics
}
