package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	alertapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/alert"
	assetapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/asset"
	documentapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/document"
	financeapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/finance"
	identityapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/identity"
	personnelapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/personnel"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/auth"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/event"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/logger"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/persistence"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/storage"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/telemetry"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/handler"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/middleware"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is stamped at build time with -ldflags "-X main.Version=..."
var Version = "1.0.0"

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		ServiceName: cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SITINFRA API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.ParseGormLevel(cfg.Log.Level))

	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", db.Driver))

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:  cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem: dbSystem(db.Driver),
	}, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}

	// SQLite databases are created on the fly; PostgreSQL normally goes
	// through cmd/migrate.
	if db.Driver == config.DriverSQLite || cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}

	blacklist, closeBlacklist := newTokenBlacklist(cfg, log)

	objectStorage, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	publisher := event.New(cfg.Kafka, log)

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	bankRepo := persistence.NewGormBankRepository(db.DB)
	transactionRepo := persistence.NewGormBankTransactionRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	equipmentRepo := persistence.NewGormEquipmentRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	assignmentRepo := persistence.NewGormEquipmentAssignmentRepository(db.DB)
	licenseRepo := persistence.NewGormSoftwareLicenseRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	alertRepo := persistence.NewGormAlertRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, blacklist, jwtService.Expiration(), log)

	bankService := financeapp.NewBankService(bankRepo, log)
	transactionService := financeapp.NewTransactionService(transactionRepo, bankRepo, log)
	invoiceService := financeapp.NewInvoiceService(invoiceRepo, publisher, log)

	equipmentService := assetapp.NewEquipmentService(equipmentRepo, log)
	vehicleService := assetapp.NewVehicleService(vehicleRepo, employeeRepo, log)
	assignmentService := assetapp.NewAssignmentService(assignmentRepo, equipmentRepo, userRepo, log)
	licenseService := assetapp.NewLicenseService(licenseRepo, userRepo, log)

	employeeService := personnelapp.NewEmployeeService(employeeRepo, userRepo, log)

	documentService := documentapp.NewDocumentService(documentRepo, userRepo, objectStorage, cfg.Storage.PresignExpiration, log)
	contractService := documentapp.NewContractService(contractRepo, documentRepo, log)
	uploadService := documentapp.NewUploadService(objectStorage, documentService, publisher, cfg.Storage.PresignExpiration, log)

	alertService := alertapp.NewAlertService(alertRepo, userRepo, publisher, log)
	expiryScanner := alertapp.NewExpiryScanner(alertRepo, alertService, licenseRepo, vehicleRepo, contractRepo, invoiceRepo, cfg.Scheduler.LeadTime, log)
	runClaimer, closeRunClaimer := newRunClaimer(blacklist)
	stopExpiryScan, err := startExpiryScan(ctx, cfg.Scheduler, expiryScanner, runClaimer, log)
	if err != nil {
		log.Fatal("Failed to start expiry scan", zap.Error(err))
	}

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Users:        handler.NewUserHandler(userService),
		Banks:        handler.NewBankHandler(bankService, transactionService),
		Transactions: handler.NewTransactionHandler(transactionService),
		Invoices:     handler.NewInvoiceHandler(invoiceService),
		Equipment:    handler.NewEquipmentHandler(equipmentService),
		Vehicles:     handler.NewVehicleHandler(vehicleService),
		Assignments:  handler.NewAssignmentHandler(assignmentService),
		Licenses:     handler.NewLicenseHandler(licenseService),
		Employees:    handler.NewEmployeeHandler(employeeService),
		Documents:    handler.NewDocumentHandler(documentService),
		Contracts:    handler.NewContractHandler(contractService),
		Alerts:       handler.NewAlertHandler(alertService),
		Upload:       handler.NewUploadHandler(uploadService),
		System:       handler.NewSystemHandler(db, cfg.App.Name, Version),
	}

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	if cfg.Telemetry.Enabled {
		tracing := middleware.DefaultTracingConfig()
		tracing.ServiceName = cfg.Telemetry.ServiceName
		engine.Use(middleware.TracingWithConfig(tracing))
		engine.Use(middleware.SpanAttributes())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var limiters []*middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		limiters = append(limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
	}

	var routeOpts router.RouteOptions
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		limiters = append(limiters, authLimiter)
		routeOpts.AuthMiddleware = append(routeOpts.AuthMiddleware, middleware.RateLimit(authLimiter))
	}

	middleware.SetupValidator()
	router.ConfigureFallbacks(engine)

	authConfig := middleware.DefaultAuthConfig(jwtService, blacklist)
	authConfig.Logger = log

	r := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(middleware.Authenticate(authConfig))
	router.RegisterAPI(r, handlers, routeOpts).Setup()
	router.RegisterHealth(engine, handlers.System)
	if cfg.Storage.Provider == config.StorageLocal {
		router.ServeUploads(engine, filepath.Join(cfg.Storage.LocalDir, "uploads"))
	}

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	for _, limiter := range limiters {
		limiter.Stop()
	}
	if err := stopExpiryScan(shutdownCtx); err != nil {
		log.Error("Error stopping expiry scan", zap.Error(err))
	}
	if err := closeRunClaimer(); err != nil {
		log.Error("Error closing run claimer", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		log.Error("Error closing event publisher", zap.Error(err))
	}
	if err := closeBlacklist(); err != nil {
		log.Error("Error closing token blacklist", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist returns the Redis blacklist when Redis is enabled and
// reachable, the in-memory one otherwise.
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) (auth.TokenBlacklist, func() error) {
	noop := func() error { return nil }
	if !cfg.Redis.Enabled {
		log.Info("Using in-memory token blacklist")
		return auth.NewInMemoryTokenBlacklist(), noop
	}
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		return auth.NewInMemoryTokenBlacklist(), noop
	}
	log.Info("Using Redis token blacklist", zap.String("addr", cfg.Redis.Addr()))
	return blacklist, blacklist.Close
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

func dbSystem(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}
