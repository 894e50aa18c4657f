// Package httpapi hosts the quiz engine over HTTP for web frontends.
package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avinashb/quizmind/internal/bank"
	"github.com/avinashb/quizmind/internal/session"
)

// Server exposes quiz sessions as a JSON API.
type Server struct {
	manager *session.Manager
	bank    *bank.Bank
	logger  *zap.Logger
	router  *gin.Engine
}

// New creates a Server around the given session manager.
func New(manager *session.Manager, b *bank.Bank, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		manager: manager,
		bank:    b,
		logger:  logger,
		router:  router,
	}

	router.Use(s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.health)

	v1 := s.router.Group("/api/v1")
	v1.GET("/subjects", s.listSubjects)
	v1.POST("/sessions", s.createSession)
	v1.GET("/sessions/:id/next", s.nextQuestion)
	v1.POST("/sessions/:id/answers", s.submitAnswer)
	v1.GET("/sessions/:id/summary", s.summary)
	v1.POST("/sessions/:id/end", s.endSession)
}

// Handler returns the http.Handler for the server, usable both with
// http.Server and httptest.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
