package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	activityapp "github.com/fintrack/backend/internal/application/activity"
	certificateapp "github.com/fintrack/backend/internal/application/certificate"
	"github.com/fintrack/backend/internal/application/common"
	emailapp "github.com/fintrack/backend/internal/application/email"
	financeapp "github.com/fintrack/backend/internal/application/finance"
	freelanceapp "github.com/fintrack/backend/internal/application/freelance"
	goldapp "github.com/fintrack/backend/internal/application/gold"
	identityapp "github.com/fintrack/backend/internal/application/identity"
	notificationapp "github.com/fintrack/backend/internal/application/notification"
	reminderapp "github.com/fintrack/backend/internal/application/reminder"
	reportapp "github.com/fintrack/backend/internal/application/report"
	settingapp "github.com/fintrack/backend/internal/application/setting"
	whatsappapp "github.com/fintrack/backend/internal/application/whatsapp"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/auth"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/email"
	"github.com/fintrack/backend/internal/infrastructure/event"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/fintrack/backend/internal/infrastructure/persistence"
	"github.com/fintrack/backend/internal/infrastructure/telemetry"
	"github.com/fintrack/backend/internal/interfaces/http/handler"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/fintrack/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/fintrack/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			FinTrack API
//	@version		1.0
//	@description	Personal finance tracker: expenses, salaries, savings certificates, gold, freelance revenue and reports.

//	@contact.name	API Support
//	@contact.url	https://github.com/fintrack/backend

//	@license.name	MIT

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	providers, err := setupTelemetry(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			bootLog.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	// The OTLP bridge sees every entry once logs export is on
	log, err := logger.New(logCfg, telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		LoggerProvider: providers.Logs,
		Level:          logger.ParseLevel(cfg.Log.Level),
	}))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.ProfilingUser,
		BasicAuthPassword: cfg.Telemetry.ProfilingPassword,
		Memory:            cfg.Telemetry.ProfilingMemory,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() { _ = profiler.Stop() }()
	if profiler.IsEnabled() {
		providers.Traces.EnableSpanProfiles()
	}

	log.Info("Starting FinTrack backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.GormConfig{
		Level:         cfg.Log.Level,
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
	})
	db, err := persistence.Open(cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        db.System(),
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Database tracing unavailable", zap.Error(err))
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, providers.Metrics, telemetry.DBMetricsConfig{
		Enabled:            providers.Metrics.IsEnabled(),
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err != nil {
		log.Warn("Database metrics unavailable", zap.Error(err))
	}
	if dbMetrics != nil {
		defer dbMetrics.Stop()
	}

	revocations, closeRedis := newRevocations(ctx, cfg.Redis, log)
	defer closeRedis()
	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	salaryRepo := persistence.NewGormSalaryRepository(db.DB)
	goalRepo := persistence.NewGormGoalRepository(db.DB)
	certificateRepo := persistence.NewGormCertificateRepository(db.DB)
	withdrawalRepo := persistence.NewGormWithdrawalRepository(db.DB)
	purchaseRepo := persistence.NewGormGoldPurchaseRepository(db.DB)
	saleRepo := persistence.NewGormGoldSaleRepository(db.DB)
	revenueRepo := persistence.NewGormRevenueRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	reminderRepo := persistence.NewGormReminderRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)

	// Services
	authService := identityapp.NewAuthService(userRepo, categoryRepo, jwtService, revocations, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, categoryRepo)
	salaryService := financeapp.NewSalaryService(salaryRepo, certificateRepo)
	categoryService := financeapp.NewCategoryService(categoryRepo)
	goalService := financeapp.NewGoalService(goalRepo)
	recurringService := financeapp.NewRecurringService(expenseRepo, salaryRepo, log)
	certificateService := certificateapp.NewCertificateService(certificateRepo, withdrawalRepo)
	goldService := goldapp.NewGoldService(purchaseRepo, saleRepo)
	freelanceService := freelanceapp.NewFreelanceService(revenueRepo, paymentRepo)
	subscriptionService := whatsappapp.NewSubscriptionService(subscriptionRepo)
	reminderService := reminderapp.NewReminderService(reminderRepo, cfg.Finance.UpcomingDays)
	notificationService := notificationapp.NewNotificationService(notificationRepo)
	activityService := activityapp.NewActivityService(activityRepo)
	settingService := settingapp.NewSettingService(settingRepo)
	emailService := emailapp.NewEmailService(email.NewSender(cfg.Email, log), log)
	reportService := reportapp.NewReportService(reportapp.Repositories{
		Expenses:     expenseRepo,
		Salaries:     salaryRepo,
		Goals:        goalRepo,
		Revenues:     revenueRepo,
		Certificates: certificateRepo,
		Withdrawals:  withdrawalRepo,
		Purchases:    purchaseRepo,
		Sales:        saleRepo,
	})
	dashboardService := reportapp.NewDashboardService(reportService, reminderService, certificateService, activityService)

	// Domain events feed the activity log and the business metrics
	eventBus := event.NewInMemoryEventBus(log)
	for _, svc := range []interface {
		SetEventPublisher(shared.EventPublisher)
	}{
		authService, expenseService, salaryService, categoryService, goalService, recurringService,
		certificateService, goldService, freelanceService, subscriptionService, reminderService,
	} {
		svc.SetEventPublisher(eventBus)
	}
	eventBus.Subscribe(activityapp.NewRecorder(activityRepo, log))

	if providers.Metrics.IsEnabled() {
		financeMetrics, err := telemetry.NewFinanceMetrics(telemetry.FinanceMetricsConfig{
			Meter:       providers.Metrics.Meter("fintrack"),
			Logger:      log,
			Users:       userRepo,
			Withdrawals: withdrawalRepo,
		})
		if err != nil {
			log.Warn("Finance metrics unavailable", zap.Error(err))
		} else {
			eventBus.Subscribe(financeMetrics)
			authService.SetMetrics(financeMetrics)
			recurringService.SetMetrics(financeMetrics)
			emailService.SetMetrics(financeMetrics)
			financeMetrics.StartPeriodicCollection(ctx, time.Minute)
			defer financeMetrics.Stop()
		}
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Handlers
	base := handler.NewBaseHandler(common.Limits{Default: cfg.Finance.PageSize, Max: cfg.Finance.MaxPageSize})
	systemHandler := handler.NewSystemHandler(db, version)
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(base, authService),
		Expense:      handler.NewExpenseHandler(base, expenseService),
		Salary:       handler.NewSalaryHandler(base, salaryService),
		Category:     handler.NewCategoryHandler(base, categoryService),
		Goal:         handler.NewGoalHandler(base, goalService),
		Recurring:    handler.NewRecurringHandler(base, recurringService),
		Certificate:  handler.NewCertificateHandler(base, certificateService),
		Gold:         handler.NewGoldHandler(base, goldService),
		Freelance:    handler.NewFreelanceHandler(base, freelanceService),
		WhatsApp:     handler.NewWhatsAppHandler(base, subscriptionService),
		Reminder:     handler.NewReminderHandler(base, reminderService),
		Notification: handler.NewNotificationHandler(base, notificationService),
		Activity:     handler.NewActivityHandler(base, activityService),
		Setting:      handler.NewSettingHandler(base, settingService),
		Report:       handler.NewReportHandler(base, reportService, dashboardService),
		Email:        handler.NewEmailHandler(base, emailService),
		Backup:       handler.NewBackupHandler(base),
		System:       systemHandler,
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, "/health", "/swagger")...)
	}
	engine.Use(middleware.HTTPMetrics(providers.Metrics))
	if profiler.IsEnabled() {
		engine.Use(middleware.Profiling("/swagger", "/health"))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	var authLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		authLimit = middleware.RateLimit(authLimiter)
	}

	authConfig := middleware.DefaultAuthConfig(jwtService)
	authConfig.Revocations = revocations
	authConfig.Logger = log

	engine.GET("/health", systemHandler.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, middleware.Authenticate(middleware.AuthConfig{
			Tokens:      jwtService,
			Revocations: revocations,
			Logger:      log,
		})),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	router.Mount(engine, router.DefaultVersion,
		[]gin.HandlerFunc{middleware.Authenticate(authConfig)},
		router.FinanceRoutes(handlers, authLimit)...,
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}

// setupTelemetry exports every signal to one collector. Metrics and logs
// additionally need their own switch.
func setupTelemetry(ctx context.Context, tc config.TelemetryConfig, log *zap.Logger) (*telemetry.Signals, error) {
	return telemetry.Setup(ctx, telemetry.Settings{
		Collector: telemetry.Collector{
			Endpoint:       tc.CollectorEndpoint,
			Insecure:       tc.Insecure,
			ServiceName:    tc.ServiceName,
			ServiceVersion: version,
		},
		Traces:        tc.Enabled,
		SamplingRatio: tc.SamplingRatio,
		Metrics:       tc.Enabled && tc.MetricsEnabled,
		Logs:          tc.Enabled && tc.LogsEnabled,
	}, log)
}

// newRevocations prefers redis so logouts survive restarts and are shared
// between instances. It falls back to memory when redis is off or
// unreachable. The returned func closes the redis client.
func newRevocations(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (auth.Revocations, func()) {
	if !cfg.Enabled {
		log.Info("Redis disabled, token revocations kept in memory")
		return auth.NewMemoryRevocations(), func() {}
	}
	client, err := auth.DialRedis(ctx, auth.RedisOptions{Addr: cfg.Addr(), Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		log.Warn("Redis unavailable, token revocations kept in memory", zap.Error(err))
		return auth.NewMemoryRevocations(), func() {}
	}
	log.Info("Token revocations backed by redis", zap.String("addr", cfg.Addr()))
	return auth.NewRedisRevocations(client), func() { _ = client.Close() }
}
