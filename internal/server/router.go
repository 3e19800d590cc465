package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/otostudy/otostudy-backend/internal/handlers"
  "github.com/otostudy/otostudy-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler     *handlers.AuthHandler
  AuthMiddleware  *middleware.AuthMiddleware
  UserHandler     *handlers.UserHandler
  CardHandler     *handlers.CardHandler
  ProgressHandler *handlers.ProgressHandler
  MediaRoot       string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("otostudy-backend"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)
  if cfg.MediaRoot != "" {
    router.Static("/media", cfg.MediaRoot)
  }

  api := router.Group("/api")
  // The catalog is public; anonymous users study without progress tracking.
  api.GET("/cards", cfg.AuthMiddleware.OptionalAuth(), cfg.CardHandler.ListCards)

// ===============
// || Protected ||
// ===============
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  // Progress
  protected.GET("/progress", cfg.ProgressHandler.GetProgress)
  protected.PUT("/progress", cfg.ProgressHandler.PutProgress)

  return router
}
