// Package api exposes the tt-metal demo runner over a small REST
// surface: a health probe and a blocking chat endpoint. It is a
// development convenience; production serving goes through the
// launched vLLM server.
package api

import (
	"context"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"

	"github.com/jzhengTT/ttserve/internal/demo"
	"github.com/jzhengTT/ttserve/internal/logger"
)

// ChatRunner runs one inference for one prompt.
type ChatRunner interface {
	Run(ctx context.Context, prompt string) (*demo.Result, error)
}

type Options struct {
	// LlamaDir is reported by the health endpoint.
	LlamaDir func() string
	// Limit and Burst throttle incoming chat requests. Each run
	// reloads the model, so there is no point queueing a pile of
	// them.
	Limit rate.Limit
	Burst int
	Log   logger.Logger
}

type Server struct {
	runner   ChatRunner
	llamaDir func() string
	limiter  *rate.Limiter
	log      logger.Logger

	// mu serializes inference runs; the demo cannot share the device.
	mu sync.Mutex
}

func NewServer(runner ChatRunner, opts Options) *Server {
	limit := opts.Limit
	if limit == 0 {
		limit = rate.Every(time.Second)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 2
	}
	llamaDir := opts.LlamaDir
	if llamaDir == nil {
		llamaDir = func() string { return "" }
	}
	log := opts.Log
	if log == nil {
		log = logger.Default()
	}
	return &Server{
		runner:   runner,
		llamaDir: llamaDir,
		limiter:  rate.NewLimiter(limit, burst),
		log:      log,
	}
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.handleHealth)
	e.POST("/chat", s.handleChat)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		Note:     "Send POST /chat with a prompt.",
		LlamaDir: s.llamaDir(),
	})
}

func (s *Server) handleChat(c *echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing 'prompt' in request body"})
	}
	if !s.limiter.Allow() {
		return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests; inference reloads the model per prompt"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Info("running inference", "prompt_len", len(req.Prompt))
	start := time.Now()
	res, err := s.runner.Run(c.Request().Context(), req.Prompt)
	if err != nil {
		s.log.Error("inference failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:       err.Error(),
			TimeSeconds: roundSeconds(time.Since(start)),
		})
	}

	s.log.Info("inference completed", "elapsed", res.Elapsed)
	return c.JSON(http.StatusOK, ChatResponse{
		ID:          uuid.NewString(),
		Success:     true,
		Prompt:      req.Prompt,
		Output:      res.Output,
		TimeSeconds: roundSeconds(res.Elapsed),
	})
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
