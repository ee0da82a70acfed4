package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"agriconnect/database"
	"agriconnect/internal/cache"
	"agriconnect/internal/config"
	"agriconnect/internal/inference/deepseek"
	"agriconnect/internal/inference/roboflow"
	"agriconnect/internal/media"
	"agriconnect/internal/microservices/http-api/handler"
	"agriconnect/internal/microservices/http-api/middleware"
	"agriconnect/internal/microservices/http-api/repository"
	"agriconnect/internal/microservices/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis is optional: without it enrichment just skips the cache.
	infoCache, err := cache.NewDiseaseInfoCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, disease info caching disabled", "error", err)
		infoCache = nil
	} else {
		defer infoCache.Close()
	}

	mediaStore := media.NewStore(cfg.MediaRoot)
	roboflowClient := roboflow.NewClient(cfg.RoboflowAPIURL, cfg.RoboflowAPIKey)
	deepseekClient := deepseek.NewClient(cfg.DeepSeekAPIURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	detectionRepo := repository.NewDetectionRepository(db)
	diseaseInfoRepo := repository.NewDiseaseInfoRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo, refreshTokenRepo, mediaStore)
	commentService := service.NewCommentService(commentRepo, replyRepo, postRepo, likeRepo, userRepo)
	postService := service.NewPostService(postRepo, likeRepo, reactionRepo, userRepo, commentService, mediaStore)
	enrichmentService := service.NewEnrichmentService(diseaseInfoRepo, deepseekClient, infoCache, logger)
	detectionService := service.NewDetectionService(roboflowClient, detectionRepo, enrichmentService, mediaStore, cfg, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService, cfg.AccessTokenTTL)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	detectionHandler := handler.NewDetectionHandler(detectionService, enrichmentService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	authMW := middleware.AuthMiddleware(authService)
	optionalMW := middleware.OptionalAuth(authService)

	authHandler.RegisterRoutes(r.Group("/"), authMW)

	api := r.Group("/api")
	{
		community := api.Group("/community")
		postHandler.RegisterRoutes(community, authMW, optionalMW)
		commentHandler.RegisterRoutes(community, authMW, optionalMW)

		detectionHandler.RegisterRoutes(api, authMW)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(h)
}
