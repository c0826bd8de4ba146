// Package api serves the task service over HTTP/JSON.
package api

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"

	"todo-list/internal/config"
	"todo-list/internal/logging"
	"todo-list/internal/services"

	"github.com/gin-gonic/gin"
)

// TaskRoutePrefixes lists the paths the task resource is mounted under.
var TaskRoutePrefixes = []string{"/tasks", "/api/tasks"}

// RouterOptions toggles the optional parts of the router.
type RouterOptions struct {
	CORS    bool
	Metrics *Metrics
}

// NewRouter builds the gin engine with every route and middleware.
func NewRouter(svc services.TaskService, log logging.Logger, opts RouterOptions) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), LoggerMiddleware(log))
	if opts.CORS {
		engine.Use(CORSMiddleware())
	}
	if opts.Metrics != nil {
		engine.Use(opts.Metrics.Middleware())
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	engine.GET("/health", health)

	h := &taskHandler{svc: svc}
	for _, prefix := range TaskRoutePrefixes {
		tasks := engine.Group(prefix)
		tasks.GET("", h.list)
		tasks.POST("", h.create)
		tasks.GET("/:id", h.get)
		tasks.PUT("/:id", h.update)
		tasks.PATCH("/:id", h.update)
		tasks.DELETE("/:id", h.delete)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "route not found"})
	})

	return engine
}

// Server wraps http.Server with graceful shutdown capabilities
type Server struct {
	httpServer *http.Server
	config     config.ServerConfig
	logger     logging.Logger
}

// New creates a new server with all HTTP configuration
func New(svc services.TaskService, cfg *config.Config, log logging.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)

	var metrics *Metrics
	if cfg.Server.Metrics {
		metrics = NewMetrics()
	}
	handler := NewRouter(svc, log, RouterOptions{CORS: cfg.Server.CORS, Metrics: metrics})

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		config: cfg.Server,
		logger: log,
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", "address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("Server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	return s.shutdown()
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	s.logger.Info("Server stopped")
	return nil
}
