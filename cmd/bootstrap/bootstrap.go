package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-lending/config"
	deliveryHttp "library-lending/internal/delivery/http"
	"library-lending/internal/delivery/http/handler"
	"library-lending/internal/delivery/http/middleware"
	"library-lending/internal/infrastructure/cache"
	"library-lending/internal/infrastructure/database"
	"library-lending/internal/repository"
	"library-lending/internal/service"
	"library-lending/internal/usecase"
	"library-lending/pkg/jwt"
	"library-lending/pkg/validator"

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
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database schema is up to date")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	readerRepo := repository.NewReaderProfileRepository()
	librarianRepo := repository.NewLibrarianProfileRepository()
	adminRepo := repository.NewAdminProfileRepository()
	bookRepo := repository.NewBookRepository()
	recordRepo := repository.NewBorrowRecordRepository()
	auditRepo := repository.NewAuditLogRepository()
	transactor := repository.NewTransactor(db)

	// Initialize services
	auditService := service.NewAuditService(log, auditRepo)
	syncService := service.NewAvailabilitySyncService(db, redisClient, log)

	// Seed Redis circulation counters from the database before serving
	if err := syncService.SyncOnStartup(context.Background()); err != nil {
		log.Warnf("Failed to sync availability counters on startup: %+v", err)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, transactor, log, userRepo, roleRepo, readerRepo, librarianRepo, adminRepo, auditService, jwtService, redisClient)
	catalogUsecase := usecase.NewCatalogUsecase(db, transactor, log, bookRepo, recordRepo, auditService, syncService)
	lendingUsecase := usecase.NewLendingUsecase(db, transactor, log, bookRepo, readerRepo, recordRepo, auditService, syncService, cfg.Loan.PeriodDays, cfg.Loan.FineRatePerDay)
	staffUsecase := usecase.NewStaffUsecase(db, transactor, log, userRepo, roleRepo, librarianRepo, adminRepo, auditService)
	reportUsecase := usecase.NewReportUsecase(db, log, bookRepo, readerRepo, syncService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	bookHandler := handler.NewBookHandler(catalogUsecase, customValidator)
	lendingHandler := handler.NewLendingHandler(lendingUsecase, customValidator)
	staffHandler := handler.NewStaffHandler(staffUsecase, customValidator)
	reportHandler := handler.NewReportHandler(reportUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, bookHandler, lendingHandler, staffHandler, reportHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
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
