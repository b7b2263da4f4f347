// Package httpserver wires the gin engine, middlewares and routes.
package httpserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"djigbo-server/internal/config"
	authvalidator "djigbo-server/internal/infrastructure/auth"
	"djigbo-server/internal/interfaces/httpserver/handlers/chathandler"
	"djigbo-server/internal/interfaces/httpserver/handlers/conversationhandler"
	"djigbo-server/internal/interfaces/httpserver/handlers/feedbackhandler"
	"djigbo-server/internal/interfaces/httpserver/handlers/moodhandler"
	"djigbo-server/internal/interfaces/httpserver/handlers/userhandler"
	middleware "djigbo-server/internal/interfaces/httpserver/middlewares"
)

// Handlers groups the route handlers the server exposes.
type Handlers struct {
	Chat         *chathandler.ChatHandler
	Conversation *conversationhandler.ConversationHandler
	Feedback     *feedbackhandler.FeedbackHandler
	User         *userhandler.UserHandler
	Mood         *moodhandler.MoodHandler
}

type HTTPServer struct {
	engine    *gin.Engine
	server    *http.Server
	validator *authvalidator.Auth0Validator
	handlers  Handlers
	config    *config.Config
	logger    zerolog.Logger
}

func NewHTTPServer(
	handlers Handlers,
	validator *authvalidator.Auth0Validator,
	cfg *config.Config,
	logger zerolog.Logger,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	s := &HTTPServer{
		engine:    gin.New(),
		validator: validator,
		handlers:  handlers,
		config:    cfg,
		logger:    logger,
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	s.engine.Use(middleware.LoggingMiddleware(logger))
	s.engine.Use(middleware.MetricsMiddleware())
	s.engine.Use(middleware.CORSMiddleware())

	s.bindRoutes()
	return s
}

func (s *HTTPServer) bindRoutes() {
	// Health and metrics are public.
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/readyz", func(c *gin.Context) {
		if !s.validator.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Avatars render in shared views, so they are fetched without a token.
	s.engine.GET("/api/user/avatar/:userId", s.handlers.User.Avatar)

	api := s.engine.Group("/api")
	api.Use(
		middleware.AuthMiddleware(s.validator, s.logger),
		middleware.RateLimitMiddleware(s.config.RateLimitPerMinute),
	)

	// Chat
	api.POST("/chat", s.handlers.Chat.Chat)
	api.POST("/ollama-chat", s.handlers.Chat.OllamaChat)
	api.POST("/together-chat", s.handlers.Chat.TogetherChat)

	// Conversations
	api.GET("/conversations", s.handlers.Conversation.List)
	api.GET("/conversations/:id", s.handlers.Conversation.Get)
	api.DELETE("/conversations/:id", s.handlers.Conversation.Delete)

	// Feedback
	api.POST("/feedback", s.handlers.Feedback.Submit)
	api.GET("/feedback", s.handlers.Feedback.ListMine)

	// Cross-user views
	admin := api.Group("/admin", middleware.RequireScope(middleware.AdminScope))
	admin.GET("/feedback", s.handlers.Feedback.ListAll)
	admin.GET("/feedback/stats", s.handlers.Feedback.Stats)
	admin.GET("/conversations/stats", s.handlers.Conversation.Stats)

	// User profile
	api.GET("/user/check", s.handlers.User.Check)
	api.POST("/user/register", s.handlers.User.Register)
	api.PUT("/user/update", s.handlers.User.Update)

	// Mood
	api.POST("/mood", s.handlers.Mood.CheckIn)
	api.GET("/mood/entries", s.handlers.Mood.History)
	api.GET("/mood/stats", s.handlers.Mood.MyStats)
	api.GET("/mood/camp", s.handlers.Mood.CampDaily)
	api.GET("/mood/camp/today", s.handlers.Mood.CampToday)
	api.GET("/mood/camp/stats", s.handlers.Mood.CampStats)
	api.GET("/mood/camp/participants", s.handlers.Mood.Participants)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.HTTPPort),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.HTTPTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

// Engine exposes the underlying router for tests.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}
