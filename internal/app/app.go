package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"internship_backend/internal/auth"
	"internship_backend/internal/cache"
	"internship_backend/internal/config"
	"internship_backend/internal/email"
	"internship_backend/internal/handlers"
	"internship_backend/internal/imageprocessor"
	"internship_backend/internal/logger"
	"internship_backend/internal/middleware"
	"internship_backend/internal/repositories"
	"internship_backend/internal/routes"
	"internship_backend/internal/services"
	"internship_backend/internal/storage"
	"internship_backend/internal/validator"
	"internship_backend/internal/workers"
	"internship_backend/migrations"
	"internship_backend/pkg/apperrors"
	"internship_backend/ws"
)

// App - собранное приложение со всеми внешними ресурсами
type App struct {
	cfg      *config.Config
	db       *gorm.DB
	redis    *redis.Client
	hub      *ws.Hub
	services *services.ServiceContainer
	router   *gin.Engine
}

// Run загружает конфигурацию, поднимает сервер и ждет SIGINT/SIGTERM.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.Configure(cfg.IsDevelopment())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize application", "error", err)
	}

	if err := a.Serve(ctx); err != nil {
		logger.Fatal("Server error", "error", err)
	}
}

// New подключается к БД и Redis, применяет миграции и собирает роутер.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	a.db = db

	if cfg.Database.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(sqlDB); err != nil {
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("Database migrations applied")
	}

	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		logger.Info("Redis connected")
	} else {
		logger.Warn("REDIS_URL is not set: refresh token revocation and rate limiting are disabled")
	}

	if err := a.build(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if !cfg.IsDevelopment() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.Use(repositories.StatementTimeout{Timeout: cfg.Database.Timeout}); err != nil {
		return nil, fmt.Errorf("register statement timeout: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	logger.Info("Database connected")
	return db, nil
}

func (a *App) build(ctx context.Context) error {
	cfg := a.cfg

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
		ResetTTL:      cfg.JWT.ResetTTL,
		Issuer:        cfg.JWT.Issuer,
	})
	if err != nil {
		return err
	}

	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	templates, err := email.NewDefaultTemplateManager(cfg.Email.TemplatesDir)
	if err != nil {
		return fmt.Errorf("load email templates: %w", err)
	}
	mailer := email.NewMailer(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})

	var (
		revoker auth.RefreshRevoker = auth.NoopRevoker{}
		limiter middleware.Limiter
	)
	if a.redis != nil {
		revoker = cache.NewRedisRevoker(a.redis, cfg.Redis.Prefix)
		limiter = cache.NewFixedWindowLimiter(a.redis, cfg.Redis.Prefix, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	a.hub = ws.NewHub()

	a.services = services.NewServiceContainer(services.Dependencies{
		Repos:     repositories.NewRepositories(),
		Tokens:    tokens,
		Hasher:    auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		Revoker:   revoker,
		Mailer:    mailer,
		Templates: templates,
		Storage:   storageInstance,
		Images:    imageprocessor.NewProcessor(cfg.Upload.ThumbnailSize, cfg.Upload.ImageQuality),
		Publisher: a.hub,
		Auth: services.AuthOptions{
			FrontendURL:      cfg.Server.FrontendURL,
			Development:      cfg.IsDevelopment(),
			ExposeResetToken: cfg.Auth.ExposeResetToken,
		},
		Attendance: services.AttendanceOptions{
			MaxFileSize:       cfg.Upload.MaxSize,
			AllowedExtensions: cfg.Upload.AllowedExtensions,
		},
	})

	if err := a.seedFirstAdmin(ctx); err != nil {
		return fmt.Errorf("seed first admin: %w", err)
	}

	appHandlers := a.initializeHandlers(storageInstance)

	a.router = a.initializeGinRouter()
	routes.RegisterRoutes(a.router, appHandlers, ws.NewWebSocketHandler(a.hub, cfg.Server.FrontendURL), tokens, routes.Options{
		Limiter: limiter,
		Swagger: !cfg.IsProduction(),
	})
	return nil
}

func (a *App) seedFirstAdmin(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return a.services.UserService.EnsureAdmin(ctx, a.db.WithContext(ctx), services.AdminSeed{
		Email:    a.cfg.Admin.Email,
		Password: a.cfg.Admin.Password,
		IDNumber: a.cfg.Admin.IDNumber,
		Name:     a.cfg.Admin.Name,
	})
}

func (a *App) initializeHandlers(storageInstance storage.Storage) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())
	svc := a.services

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if a.redis != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		})
	}

	appHandlers := &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, svc.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, svc.UserService),
		AttendanceHandler:   handlers.NewAttendanceHandler(baseHandler, svc.AttendanceService, a.cfg.Upload.MaxSize),
		AssignmentHandler:   handlers.NewAssignmentHandler(baseHandler, svc.AssignmentService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, svc.NotificationService),
		DashboardHandler:    handlers.NewDashboardHandler(baseHandler, svc.DashboardService),
		HealthHandler:       handlers.NewHealthHandler(checks, 2*time.Second),
	}

	// /uploads раздается приложением только для локального хранилища
	if local, ok := storageInstance.(*storage.LocalStorage); ok {
		appHandlers.FileHandler = handlers.NewFileHandler(baseHandler, local.BasePath())
	}
	return appHandlers
}

func (a *App) initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecureHeadersMiddleware(a.cfg.IsProduction()))
	router.Use(middleware.CORSMiddleware(a.cfg.Server.FrontendURL))
	router.Use(middleware.DBMiddleware(a.db))
	return router
}

// Serve запускает HTTP-сервер, WebSocket-хаб и воркер очистки
// и корректно останавливает их после отмены ctx.
func (a *App) Serve(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(context.Background())
	go a.hub.Run(hubCtx)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker := workers.NewNotificationCleanupWorker(
		a.db,
		a.services.NotificationService,
		a.cfg.Notifications.CleanupInterval,
		a.cfg.Notifications.Retention,
	)
	workerDone := worker.Start(workerCtx)

	srv := &http.Server{
		Addr:              a.cfg.Address(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serveErr:
		runErr = err
	}

	stopWorker()
	<-workerDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err.Error())
	}

	// hijacked WebSocket-соединения Shutdown не закрывает
	stopHub()
	<-a.hub.Done()

	a.Close()
	logger.Info("Server stopped")
	return runErr
}

// Close освобождает соединения с БД и Redis
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("Failed to close redis", "error", err.Error())
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database", "error", err.Error())
		}
	}
}
