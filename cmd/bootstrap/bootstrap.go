package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nightingale/config"
	deliveryHttp "nightingale/internal/delivery/http"
	"nightingale/internal/delivery/http/handler"
	"nightingale/internal/delivery/http/middleware"
	"nightingale/internal/infrastructure/cache"
	"nightingale/internal/infrastructure/database"
	"nightingale/internal/infrastructure/directory"
	"nightingale/internal/repository"
	"nightingale/internal/service"
	"nightingale/internal/usecase"
	"nightingale/pkg/jwt"
	"nightingale/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	rateLimiter *middleware.RateLimiter
	stop        chan struct{}
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{stop: make(chan struct{})}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.Open(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Infof("Database connected successfully (driver=%s)", cfg.DB.Driver)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server = app.initializeServer(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize JWT service and token allowlist
	jwtService := jwt.NewJWTService(cfg.JWT)
	tokenStore := cache.NewTokenStore(redisClient)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	postRepo := repository.NewPostRepository()
	commentRepo := repository.NewCommentRepository()
	reactionRepo := repository.NewReactionRepository()
	hospitalRepo := repository.NewHospitalRepository()
	reviewRepo := repository.NewReviewRepository()
	ratingRepo := repository.NewRatingRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize external directory
	directoryClient := directory.NewClient(cfg.Directory, log)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, auditService, jwtService, tokenStore)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	postUsecase := usecase.NewPostUsecase(db, log, postRepo, commentRepo, reactionRepo, auditService)
	commentUsecase := usecase.NewCommentUsecase(db, log, postRepo, commentRepo, userRepo)
	reactionUsecase := usecase.NewReactionUsecase(db, log, postRepo, reactionRepo)
	hospitalUsecase := usecase.NewHospitalUsecase(db, log, hospitalRepo, ratingRepo, auditService)
	reviewUsecase := usecase.NewReviewUsecase(db, log, hospitalRepo, reviewRepo)
	ratingUsecase := usecase.NewRatingUsecase(db, log, hospitalRepo, ratingRepo)
	directoryUsecase := usecase.NewDirectoryUsecase(log, directoryClient)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:      handler.NewAuthHandler(authUsecase, customValidator),
		User:      handler.NewUserHandler(userUsecase, customValidator),
		AuditLog:  handler.NewAuditLogHandler(auditLogUsecase),
		Post:      handler.NewPostHandler(postUsecase, customValidator),
		Comment:   handler.NewCommentHandler(commentUsecase, customValidator),
		Reaction:  handler.NewReactionHandler(reactionUsecase),
		Hospital:  handler.NewHospitalHandler(hospitalUsecase, customValidator),
		Review:    handler.NewReviewHandler(reviewUsecase, customValidator),
		Rating:    handler.NewRatingHandler(ratingUsecase, customValidator),
		Directory: handler.NewDirectoryHandler(directoryUsecase, customValidator),
	}

	// Initialize middleware
	app.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	middlewares := deliveryHttp.Middlewares{
		Auth:      middleware.NewAuthMiddleware(jwtService, tokenStore),
		CORS:      middleware.NewCORSMiddleware(),
		Recovery:  middleware.NewRecoveryMiddleware(log),
		Logging:   middleware.NewLoggingMiddleware(log),
		Metrics:   middleware.NewMetricsMiddleware(),
		RateLimit: app.rateLimiter,
	}

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, middlewares)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	app.rateLimiter.StartCleanup(app.stop)

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	close(app.stop)

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
