package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/liview/internal/api/http"
	"github.com/GriffinCanCode/liview/internal/api/middleware"
	"github.com/GriffinCanCode/liview/internal/domain/archive"
	"github.com/GriffinCanCode/liview/internal/domain/gallery"
	"github.com/GriffinCanCode/liview/internal/domain/session"
	"github.com/GriffinCanCode/liview/internal/domain/temparea"
	"github.com/GriffinCanCode/liview/internal/infrastructure/config"
	"github.com/GriffinCanCode/liview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/liview/internal/infrastructure/monitoring"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	session *session.Session
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}

	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return New(cfg, logger, monitoring.NewMetrics())
}

// New wires a server from an existing logger and metrics set
func New(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics) (*Server, error) {
	logger = logging.OrNop(logger)

	logger.Info("Initializing liview server",
		zap.String("addr", address(cfg)),
		zap.String("policy", cfg.Storage.Policy),
		zap.Strings("extensions", cfg.Images.Extensions),
	)

	policy, err := temparea.ParsePolicy(cfg.Storage.Policy)
	if err != nil {
		return nil, err
	}

	extractor := archive.NewExtractor(archive.Options{
		MaxEntrySize: cfg.Archive.MaxEntrySizeBytes(),
		Logger:       logger,
	})

	sess, err := session.New(session.Options{
		TempRoot:      cfg.Storage.TempRoot,
		CacheRoot:     cfg.Storage.CacheRoot,
		DefaultPolicy: policy,
		Extractor:     extractor,
		Metrics:       metrics,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	locator, err := gallery.NewLocator(cfg.Images.Extensions, logger)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(sess, locator, metrics, logger)
	apihttp.RegisterRoutes(router, handlers)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully", zap.String("session_id", sess.ID().String()))

	return &Server{
		router:  router,
		session: sess,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		http: &http.Server{
			Addr:              address(cfg),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler { return s.router }

// Session returns the server's session
func (s *Server) Session() *session.Session { return s.session }

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones, then removes
// the session's scoped directories
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP shutdown failed", zap.Error(err))
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := s.session.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close session: %w", err))
	}

	// Sync logger before exit
	_ = s.logger.Sync()

	return errors.Join(errs...)
}

func address(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
}
