package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"epicode/database"
	"epicode/internal/api/handler"
	"epicode/internal/api/middleware"
	"epicode/internal/api/repository"
	"epicode/internal/api/service"
	"epicode/internal/config"
	"epicode/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	tagRepo := repository.NewTagRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	upvoteRepo := repository.NewUpvoteRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	tagService := service.NewTagService(tagRepo)
	postService := service.NewPostService(postRepo, tagService, tagRepo, commentRepo, upvoteRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	reactionService := service.NewReactionService(reactionRepo, commentRepo)
	upvoteService := service.NewUpvoteService(upvoteRepo, postRepo)

	// Middleware
	authRequired := middleware.AuthRequired(authService)
	authOptional := middleware.AuthOptional(authService)
	limiter := middleware.NewRateLimiter(newRedisClient(cfg, logger), cfg.AuthRateLimit, cfg.AuthRateWindow)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterRoutes(api.Group("/auth"), limiter.Middleware("auth"))

	posts := api.Group("/posts")
	postHandler := handler.NewPostHandler(postService)
	postHandler.RegisterRoutes(posts, authRequired)

	commentHandler := handler.NewCommentHandler(commentService, reactionService)
	commentHandler.RegisterPostRoutes(posts, authOptional)
	commentHandler.RegisterRoutes(api.Group("/comments"), authRequired, authOptional)

	upvoteHandler := handler.NewUpvoteHandler(upvoteService)
	upvoteHandler.RegisterRoutes(posts, authOptional)

	tagHandler := handler.NewTagHandler(tagService)
	tagHandler.RegisterRoutes(api.Group("/tags"), authRequired)

	if cfg.MinioEndpoint != "" {
		uploader, err := storage.NewMinioUploader(context.Background(), storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			BaseURL:   cfg.MinioBaseURL,
		})
		if err != nil {
			logger.Error("object storage setup failed", "error", err)
			os.Exit(1)
		}
		uploadService := service.NewUploadService(uploader, imageRepo)
		uploadHandler := handler.NewUploadHandler(uploadService)
		uploadHandler.RegisterRoutes(api.Group("/uploads"), authRequired)
	} else {
		logger.Warn("MINIO_ENDPOINT not set, upload routes disabled")
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting HTTP server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newRedisClient returns nil when no Redis URL is configured; the rate
// limiter falls back to in-process token buckets in that case.
func newRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, using in-process rate limiting", "error", err)
		return nil
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, using in-process rate limiting", "error", err)
		return nil
	}
	return client
}
