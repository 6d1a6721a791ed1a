package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consumed/pkg/cache"
	"consumed/pkg/config"
	"consumed/pkg/database"
	"consumed/pkg/jwt"
	"consumed/pkg/logger"
	"consumed/pkg/middleware"
	"consumed/pkg/queue"
	"consumed/pkg/s3"
	"consumed/pkg/telemetry"
	feedHTTP "consumed/services/feed/internal/controller/http"
	"consumed/services/feed/internal/repo/persistent"
	"consumed/services/feed/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "consumed/services/feed/docs" // Swagger docs
)

const serviceName = "feed-service"

type App struct {
	cfg               *config.Config
	log               *logger.Logger
	db                *gorm.DB
	redisClient       *redis.Client
	s3Client          *s3.Client
	queueClient       *queue.Client
	jwtService        *jwt.Service
	shutdownTelemetry func(context.Context) error
	httpServer        *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	shutdownTelemetry, err := telemetry.Setup(context.Background(), serviceName, cfg.OTELEndpoint, cfg.OTELEnabled)
	if err != nil {
		log.Error("Failed to set up tracing: %v (continuing without tracing)", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without rate limiting)", err)
		redisClient = nil
	}

	var s3Client *s3.Client
	if cfg.S3BucketName != "" {
		s3Client, err = s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			return nil, err
		}
	}

	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
			queueClient = nil
		}
	}

	return &App{
		cfg:               cfg,
		log:               log,
		db:                db,
		redisClient:       redisClient,
		s3Client:          s3Client,
		queueClient:       queueClient,
		jwtService:        jwt.NewService(cfg.JWTSecret),
		shutdownTelemetry: shutdownTelemetry,
	}, nil
}

// Router wires repositories, use cases and handlers into a gin engine.
func (a *App) Router() (*gin.Engine, error) {
	// Typed nil clients must not reach the interfaces.
	var publisher usecase.EventPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}
	var media usecase.MediaResolver
	if a.s3Client != nil {
		media = a.s3Client
	}

	// Initialize repositories
	feedRepo := persistent.NewFeedRepository(a.db)
	userRepo := persistent.NewUserRepository(a.db)
	interactionRepo := persistent.NewInteractionRepository(a.db)

	// Initialize use cases
	feedUseCase := usecase.NewFeedUseCase(feedRepo, media, a.log)
	profileUseCase, err := usecase.NewProfileUseCase(userRepo, publisher, a.cfg.ProfileCacheSize, a.log)
	if err != nil {
		return nil, err
	}
	interactionUseCase := usecase.NewInteractionUseCase(interactionRepo, publisher, a.log)

	// Initialize HTTP handlers
	feedHandler := feedHTTP.NewFeedHandler(feedUseCase, profileUseCase, interactionUseCase, a.log, a.cfg.FeedDefaultLimit, a.cfg.FeedMaxLimit)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.NoStore())
	api.Use(middleware.AuthMiddleware(a.jwtService))
	api.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitRequests, a.cfg.RateLimitWindow, a.log))
	{
		api.GET("/social-feed", feedHandler.GetFeed)
		api.POST("/posts/:id/like", feedHandler.ToggleLike)
		api.POST("/predictions/:id/vote", feedHandler.SubmitPrediction)
	}

	return r, nil
}

func (a *App) Run() error {
	r, err := a.Router()
	if err != nil {
		return err
	}

	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("Feed service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down feed service...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			return err
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			a.log.Error("Error flushing traces: %v", err)
		}
	}

	a.log.Info("Feed service exited")
	return nil
}
