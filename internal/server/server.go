// Package server exposes the task generator over HTTP for the terminal
// client and any browser front end.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	GeneratePath      = "/api/generate-ai-tasks"
	GenerateAliasPath = "/api/generate-tasks"
	HealthPath        = "/health"

	shutdownTimeout = 10 * time.Second
)

// TaskGenerator turns a prompt into task strings.
type TaskGenerator interface {
	Generate(ctx context.Context, prompt string) ([]string, error)
}

type Server struct {
	gen    TaskGenerator
	logger *log.Logger
	router *gin.Engine
}

func New(gen TaskGenerator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	router := gin.New()
	s := &Server{gen: gen, logger: logger, router: router}

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"Content-Length", requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	router.Use(s.requestLogger())
	router.Use(gin.Recovery())

	router.GET(HealthPath, s.handleHealth)
	router.POST(GeneratePath, s.handleGenerate)
	router.POST(GenerateAliasPath, s.handleGenerate)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
