// Package httpserver exposes the chat pipeline over HTTP.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/karakusoft/faqbot/internal/domain/entities"
	"github.com/karakusoft/faqbot/internal/domain/usecases"
	"github.com/karakusoft/faqbot/internal/pkg/logger"
)

// Generic client-facing error bodies. Internal causes are logged
// server-side only and never leak into responses.
const (
	errInvalidJSON    = "無効なJSON形式です"
	errInternalServer = "サーバーエラーが発生しました"
)

// Server is the HTTP server for the FAQ chat API.
type Server struct {
	chat *usecases.ChatUseCase
	log  *logger.Logger
	addr string
}

// NewServer creates the server around the chat usecase.
func NewServer(chat *usecases.ChatUseCase, log *logger.Logger, addr string) *Server {
	return &Server{chat: chat, log: log, addr: addr}
}

// Router builds the gin engine with middleware and routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.Use(cors.Default())

	router.POST("/chat", s.handleChat)
	router.GET("/healthz", s.handleHealth)
	return router
}

// Start runs the server until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 300 * time.Second, // generation calls can be slow
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.Info("FAQチャットボットサーバーを起動します", "addr", s.addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleChat answers one question. Empty message and malformed JSON are
// client errors; every downstream failure maps to a generic server error
// with the cause logged.
func (s *Server) handleChat(c *gin.Context) {
	var req entities.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log.Warn("リクエストボディの解析に失敗しました", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidJSON})
		return
	}

	resp, err := s.chat.Chat(c.Request.Context(), &req)
	if err != nil {
		stage := usecases.StageOf(err)
		if stage == usecases.StageValidation {
			c.JSON(http.StatusBadRequest, gin.H{"error": usecases.ErrEmptyMessage.Error()})
			return
		}
		s.log.Error("チャットパイプラインが失敗しました", "stage", string(stage), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}
