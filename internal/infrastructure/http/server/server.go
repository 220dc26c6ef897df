// Package server assembles the Gin engine, routes and HTTP server
// lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lezzetli/v1/internal/infrastructure/config"
	"github.com/lezzetli/v1/internal/infrastructure/http/handlers"
	"github.com/lezzetli/v1/internal/infrastructure/http/middleware"
	"github.com/lezzetli/v1/internal/ports/outbound"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the HTTP server with its router and dependencies.
type Server struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
}

// NewServer wires the middleware chain and routes.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	identity outbound.IdentityProvider,
	authHandlers *handlers.AuthHandlers,
	recipeHandlers *handlers.RecipeHandlers,
	ratingHandlers *handlers.RatingHandlers,
	aiHandlers *handlers.AIHandlers,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	if cfg.Server.EnableCORS {
		router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	}

	registry := prometheus.NewRegistry()
	metrics := middleware.NewHTTPMetrics(registry)
	router.Use(metrics.Handler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandlers.Signup)
		auth.POST("/login", authHandlers.Login)
		auth.POST("/logout", authHandlers.Logout)
		auth.POST("/password-reset", authHandlers.PasswordReset)
		auth.GET("/me", middleware.RequireAuth(identity), authHandlers.Me)
	}

	recipes := api.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(identity), recipeHandlers.List)
		recipes.GET("/:id", recipeHandlers.Get)
		recipes.GET("/:id/ratings", ratingHandlers.ListByRecipe)
		recipes.POST("/:id/favorite", middleware.RequireAuth(identity), recipeHandlers.ToggleFavorite)
		recipes.POST("/:id/ratings", middleware.RequireAuth(identity), ratingHandlers.Add)
	}

	ratings := api.Group("/ratings", middleware.RequireAuth(identity))
	{
		ratings.GET("/mine", ratingHandlers.ListMine)
		ratings.DELETE("/:ratingId", ratingHandlers.Delete)
	}

	ai := api.Group("/ai", middleware.RequireAuth(identity))
	if cfg.RateLimit.Enable {
		ai.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize, logger))
	}
	{
		ai.POST("/suggestions", aiHandlers.Suggest)
		ai.POST("/chat", aiHandlers.SendChat)
		ai.GET("/chat", aiHandlers.ChatTranscript)
		ai.DELETE("/chat", aiHandlers.ResetChat)
	}

	return &Server{
		config: cfg,
		logger: logger.Named("http-server"),
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server stopped unexpectedly", zap.Error(err))
		}
	}()
}

// Stop drains in-flight requests within the shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	return s.server.Shutdown(shutdownCtx)
}
