// Package api exposes the order, batch and solution HTTP endpoints.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"solana-batch-auction/internal/auction"
	"solana-batch-auction/internal/logger"
	"solana-batch-auction/internal/metadata"
	"solana-batch-auction/internal/observability"
	"solana-batch-auction/internal/storage"
)

// Server serves the marketplace HTTP API.
type Server struct {
	addr   string
	router *gin.Engine

	svc       *auction.Service
	orders    storage.OrderStore
	batches   storage.BatchStore
	solutions storage.SolutionStore
	metadata  *metadata.Client
}

// ServerConfig describes the server dependencies.
type ServerConfig struct {
	Addr          string
	Service       *auction.Service
	OrderStore    storage.OrderStore
	BatchStore    storage.BatchStore
	SolutionStore storage.SolutionStore
	Metadata      *metadata.Client
}

// NewServer builds the HTTP server and registers all routes.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Service == nil || cfg.OrderStore == nil || cfg.BatchStore == nil || cfg.SolutionStore == nil {
		return nil, errors.New("api server requires the auction service and stores")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":5000"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		addr:      cfg.Addr,
		router:    router,
		svc:       cfg.Service,
		orders:    cfg.OrderStore,
		batches:   cfg.BatchStore,
		solutions: cfg.SolutionStore,
		metadata:  cfg.Metadata,
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	apiGroup := router.Group("/api")
	apiGroup.POST("/orders", s.createOrder)
	apiGroup.GET("/orders", s.listOrders)
	apiGroup.GET("/orders/:orderId", s.getOrder)
	apiGroup.GET("/batches", s.listBatches)
	apiGroup.GET("/batches/:batchId", s.getBatch)
	apiGroup.POST("/solutions", s.createSolution)

	return s, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until ctx is cancelled or it fails.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

// requestLogger logs each request and feeds the HTTP metrics.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		dur := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = path
		}
		observability.RecordHTTPRequest(method, route, strconv.Itoa(status), dur.Seconds())
		logger.Debugf("HTTP %s %s status=%d dur=%s", method, path, status, dur)
	}
}

// errorJSON writes the uniform error body.
func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// internalError logs err and answers with a generic 500.
func internalError(c *gin.Context, err error) {
	logger.Errorf("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	errorJSON(c, http.StatusInternalServerError, "internal server error")
}

// parseID parses a positive int64 path parameter.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
