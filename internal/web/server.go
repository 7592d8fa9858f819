// Package web serves the habit analyses as a JSON API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roach88/habitual/internal/analysis"
	"github.com/roach88/habitual/internal/mcptools"
)

// Server is the habitual HTTP server
type Server struct {
	analyzer *analysis.Analyzer
	recorder mcptools.Recorder
	logger   *slog.Logger
	router   *gin.Engine
}

// NewServer creates a new web server. A nil logger discards request logs.
func NewServer(a *analysis.Analyzer, rec mcptools.Recorder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		analyzer: a,
		recorder: rec,
		logger:   logger,
		router:   router,
	}

	api := router.Group("/api")
	{
		api.GET("/habits", s.handleActiveHabits)
		api.GET("/habits/overview", s.handleOverview)
		api.GET("/habits/:name/streak", s.handleStreak)
		api.POST("/habits/:name/complete", s.handleComplete)
		api.GET("/series", s.handleSeries)
	}

	return s
}

// Handler returns the router for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
