package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	clubapp "github.com/greenclub/backend/internal/application/club"
	contentapp "github.com/greenclub/backend/internal/application/content"
	membershipapp "github.com/greenclub/backend/internal/application/membership"
	"github.com/greenclub/backend/internal/infrastructure/auth"
	"github.com/greenclub/backend/internal/infrastructure/config"
	"github.com/greenclub/backend/internal/infrastructure/contentfs"
	"github.com/greenclub/backend/internal/infrastructure/logger"
	"github.com/greenclub/backend/internal/infrastructure/persistence"
	"github.com/greenclub/backend/internal/infrastructure/telemetry"
	"github.com/greenclub/backend/internal/interfaces/http/handler"
	"github.com/greenclub/backend/internal/interfaces/http/middleware"
	"github.com/greenclub/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting club backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing is optional; when disabled the provider is a no-op
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(time.Duration(cfg.Database.SlowQueryMillis)*time.Millisecond))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry.DBTraceEnabled, cfg.Database.DBName, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	store, err := contentfs.NewStore(&contentfs.StoreConfig{
		Root:   cfg.Content.Root,
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to initialize content store", zap.Error(err))
	}
	renderer := contentfs.NewRenderer()
	log.Info("Content store ready", zap.String("root", cfg.Content.Root))

	// Repositories
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	pageRepo := persistence.NewGormPolicyPageRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	poolRepo := persistence.NewGormPoolRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Application services
	auditor := auditapp.NewService(auditRepo, log)
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := membershipapp.NewAuthService(memberRepo, roleRepo, jwtService, blacklist, auditor, log)
	memberService := membershipapp.NewMemberService(memberRepo, roleRepo, auditor, log)
	roleService := membershipapp.NewRoleService(roleRepo, auditor, log)
	postService := contentapp.NewPostService(postRepo, store, renderer, auditor, log)
	pageService := contentapp.NewPolicyPageService(pageRepo, store, renderer, auditor, log)
	orphanService := contentapp.NewOrphanService(postRepo, pageRepo, store, renderer, auditor, log)
	eventService := clubapp.NewEventService(eventRepo, poolRepo, auditor, log)
	bookingService := clubapp.NewBookingService(bookingRepo, eventRepo, auditor, log)
	poolService := clubapp.NewPoolService(poolRepo, eventRepo, bookingRepo, auditor, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.New(router.Config{
		Handlers: router.Handlers{
			System:  handler.NewSystemHandler(db, version),
			Auth:    handler.NewAuthHandler(authService, jwtService),
			Member:  handler.NewMemberHandler(memberService),
			Role:    handler.NewRoleHandler(roleService),
			Post:    handler.NewPostHandler(postService),
			Page:    handler.NewPolicyPageHandler(pageService),
			Event:   handler.NewEventHandler(eventService),
			Booking: handler.NewBookingHandler(bookingService),
			Pool:    handler.NewPoolHandler(poolService),
			Orphan:  handler.NewOrphanHandler(orphanService),
			Audit:   handler.NewAuditHandler(auditor),
		},
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		HTTP:           cfg.HTTP,
		TracingEnabled: cfg.Telemetry.Enabled,
		ServiceName:    cfg.Telemetry.ServiceName,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
