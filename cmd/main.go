package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/joho/godotenv"
  "github.com/otostudy/otostudy-backend/internal/catalog"
  "github.com/otostudy/otostudy-backend/internal/clients/redis"
  "github.com/otostudy/otostudy-backend/internal/db"
  "github.com/otostudy/otostudy-backend/internal/handlers"
  "github.com/otostudy/otostudy-backend/internal/logger"
  "github.com/otostudy/otostudy-backend/internal/media"
  "github.com/otostudy/otostudy-backend/internal/middleware"
  "github.com/otostudy/otostudy-backend/internal/observability"
  "github.com/otostudy/otostudy-backend/internal/repos"
  "github.com/otostudy/otostudy-backend/internal/server"
  "github.com/otostudy/otostudy-backend/internal/services"
  "github.com/otostudy/otostudy-backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Tracing
  shutdownTracing, err := observability.InitTracing(context.Background(), log)
  if err != nil {
    log.Warn("Tracing init failed", "error", err)
  } else {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = shutdownTracing(ctx)
    }()
  }

  // Bundled catalog: fallback deck and seed source.
  bundledCards, err := catalog.Load()
  if err != nil {
    log.Error("Bundled card catalog is unreadable", "error", err)
    os.Exit(1)
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()
  if err := catalog.Seed(context.Background(), thePG); err != nil {
    log.Warn("Card catalog seeding failed, serving bundled catalog from memory", "error", err)
  }

  // Redis card cache (optional)
  cardCache, err := redis.NewCardCache(log)
  if err != nil {
    log.Warn("Redis card cache unavailable, serving without cache", "error", err)
    cardCache = nil
  }

  // Media store
  mediaStore, err := media.NewStore(log)
  if err != nil {
    log.Error("Could not init media store", "error", err)
    os.Exit(1)
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  cardRepo := repos.NewCardRepo(thePG, log)
  cardProgressRepo := repos.NewCardProgressRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  avatarService, err := services.NewAvatarService(thePG, log, userRepo, mediaStore)
  if err != nil {
    log.Warn("Could not init AvatarService, registering users without avatars", "error", err)
    avatarService = nil
  }
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, avatarService, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  cardService := services.NewCardService(thePG, log, cardRepo, cardCache, bundledCards)
  progressService := services.NewProgressService(thePG, log, cardProgressRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  cardHandler := handlers.NewCardHandler(log, cardService)
  progressHandler := handlers.NewProgressHandler(log, progressService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:     authHandler,
    AuthMiddleware:  authMiddleware,
    UserHandler:     userHandler,
    CardHandler:     cardHandler,
    ProgressHandler: progressHandler,
    MediaRoot:       mediaStore.Root(),
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
