package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	balanceapp "github.com/erp/financial-accounting/internal/application/balance"
	"github.com/erp/financial-accounting/internal/application/importer"
	"github.com/erp/financial-accounting/internal/domain/balance"
	"github.com/erp/financial-accounting/internal/infrastructure/cache"
	"github.com/erp/financial-accounting/internal/infrastructure/config"
	"github.com/erp/financial-accounting/internal/infrastructure/logger"
	"github.com/erp/financial-accounting/internal/infrastructure/persistence"
	"github.com/erp/financial-accounting/internal/infrastructure/persistence/models"
	"github.com/erp/financial-accounting/internal/infrastructure/telemetry"
	"github.com/erp/financial-accounting/internal/interfaces/http/handler"
	"github.com/erp/financial-accounting/internal/interfaces/http/middleware"
	"github.com/erp/financial-accounting/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/erp/financial-accounting/docs"
)

const version = "1.0.0"

//	@title			Financial Accounting Balance Engine API
//	@version		1.0
//	@description	Trial balance aggregation and voucher import for the financial accounting backend

//	@contact.name	API Support
//	@contact.url	https://github.com/erp/financial-accounting

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, cfg.App.Name)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting balance engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Profiling.ApplicationName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Profiling.Enabled && cfg.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	db, err := persistence.NewDatabaseWithOptions(&cfg.Database, persistence.DatabaseOptions{
		Logger:   log,
		LogLevel: cfg.Log.Level,
		LogSQL:   cfg.Telemetry.DBLogFullSQL,
		Tracing: telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		},
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// postgres schemas are owned by cmd/migrate
	if cfg.Database.Driver == "sqlite" {
		if err := db.DB.AutoMigrate(models.All()...); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := telemetry.RegisterPoolStats(meter, sqlDB); err != nil {
		log.Warn("Failed to register connection pool metrics", zap.Error(err))
	}

	balanceMetrics, err := telemetry.NewBalanceMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create balance metrics", zap.Error(err))
	}

	// Repositories
	charts := persistence.NewGormAccountsChartRepository(db.DB,
		persistence.WithDefaultSeparator(cfg.Balance.AccountSeparator))
	postings := persistence.NewGormPostingEntryRepository(db.DB, charts)
	rates := persistence.NewGormExchangeRateRepository(db.DB)
	vouchers := persistence.NewGormVoucherImportRepository(db.DB)

	rateCache, err := cache.NewRateCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithKeyPrefix(cfg.ExchangeRateCache.KeyPrefix),
	).CreateCache()
	if err != nil {
		log.Fatal("Failed to create exchange rate cache", zap.Error(err))
	}
	cachedRates := cache.NewCachedExchangeRateProvider(rates, rateCache, cfg.ExchangeRateCache.TTL, log)

	engine := balance.NewEngine(postings, cachedRates, charts,
		balance.WithValuationDefaults(balance.ValuationDefaults{
			RateTypeUID:  cfg.Balance.DefaultRateTypeUID,
			BaseCurrency: cfg.Balance.BaseCurrency,
		}),
	)

	// Application services
	trialBalanceService := balanceapp.NewTrialBalanceService(engine, balanceMetrics, balanceapp.Options{
		DefaultAccountsChart: cfg.Balance.DefaultAccountsChart,
		MaxLevel:             cfg.Balance.MaxLevel,
	})
	voucherImporter := importer.New(vouchers, balanceMetrics, importer.Config{
		BatchSize:    cfg.Importer.BatchSize,
		PollInterval: cfg.Importer.PollInterval,
		BatchTimeout: cfg.Importer.BatchTimeout,
	}, log.Named("importer"))

	if cfg.Importer.Enabled {
		if _, err := voucherImporter.Start(ctx, importer.StartCommand{Continuous: true}); err != nil {
			log.Fatal("Failed to start voucher importer", zap.Error(err))
		}
	}

	// HTTP
	middleware.SetupValidator()

	var httpMeter = meter
	if !meterProvider.IsEnabled() {
		httpMeter = nil
	}
	ginEngine, err := router.NewEngine(router.EngineConfig{
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   cfg.Telemetry.Enabled,
		ProfilingEnabled: profiler.IsEnabled(),
		Meter:            httpMeter,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		Swagger: middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		},
	}, log)
	if err != nil {
		log.Fatal("Failed to create HTTP engine", zap.Error(err))
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, sqlDB)
	ginEngine.GET("/health", systemHandler.Health)

	router.NewRouter(ginEngine).Register(
		handler.NewTrialBalanceHandler(trialBalanceService),
		handler.NewVoucherImporterHandler(voucherImporter),
		systemHandler,
	).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := voucherImporter.Shutdown(shutdownCtx); err != nil {
		log.Error("Voucher importer did not stop cleanly", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down tracer provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Failed to stop profiler", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
