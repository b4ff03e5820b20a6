package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	inventoryapp "github.com/qreats/backend/internal/application/inventory"
	orderapp "github.com/qreats/backend/internal/application/order"
	"github.com/qreats/backend/internal/infrastructure/auth"
	"github.com/qreats/backend/internal/infrastructure/cache"
	"github.com/qreats/backend/internal/infrastructure/config"
	"github.com/qreats/backend/internal/infrastructure/event"
	"github.com/qreats/backend/internal/infrastructure/logger"
	"github.com/qreats/backend/internal/infrastructure/migration"
	"github.com/qreats/backend/internal/infrastructure/persistence"
	"github.com/qreats/backend/internal/infrastructure/scheduler"
	"github.com/qreats/backend/internal/infrastructure/telemetry"
	"github.com/qreats/backend/internal/interfaces/http/handler"
	"github.com/qreats/backend/internal/interfaces/http/router"
)

//	@title			Qreats Inventory API
//	@version		1.0
//	@description	FIFO inventory ledger for multi-tenant restaurant ordering

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	tel := setupTelemetry(ctx, cfg, log)
	log = tel.logs.Attach(log, log.Level())

	log.Info("Starting Qreats inventory service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.LogFullSQL = cfg.Telemetry.DBLogFullSQL
	dbTracing.SlowQueryThresh = cfg.Database.SlowQueryThreshold
	if err := telemetry.NewDBTracingPlugin(dbTracing, log).RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := migrate(db, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	isolation, err := persistence.ParseIsolationLevel(cfg.Database.IsolationLevel)
	if err != nil {
		log.Fatal("Invalid isolation level", zap.Error(err))
	}
	uow := persistence.NewGormUnitOfWork(db.DB, log, persistence.WithIsolation(isolation))

	var ledgerMetrics *telemetry.LedgerMetrics
	if tel.meter != nil {
		ledgerMetrics, err = telemetry.NewLedgerMetrics(tel.meter)
		if err != nil {
			log.Fatal("Failed to create ledger metrics", zap.Error(err))
		}
	}
	ledger := inventoryapp.NewLedger(log)
	ledger.SetMetrics(ledgerMetrics)

	// Events
	bus := event.NewInMemoryEventBus(log)
	var checks []handler.DependencyCheck
	if cfg.Kafka.Enabled {
		writer := event.NewKafkaWriter(cfg.Kafka)
		publisher := event.NewKafkaPublisher(writer, log)
		bus.Subscribe(publisher)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Error closing Kafka writer", zap.Error(err))
			}
		}()
		log.Info("Publishing inventory events to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	// Stock level cache
	var stockCache inventoryapp.StockCache = inventoryapp.NoopStockCache{}
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = client.Close()
		}()
		stockCache = cache.NewRedisStockCache(client, cfg.Redis.StockTTL, log)
		checks = append(checks, handler.DependencyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
		log.Info("Redis stock cache enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	notifier := inventoryapp.NewStockNotifier(bus, stockCache, log)
	stockService := inventoryapp.NewStockService(uow, ledger, stockCache, notifier, log)
	orderService := orderapp.NewOrderService(uow.ForOrders(), ledger, notifier, log)

	var auditor *scheduler.ReconcileAuditor
	if cfg.Audit.Enabled {
		auditor, err = scheduler.NewReconcileAuditor(scheduler.AuditConfig{
			Interval:    cfg.Audit.Interval,
			Concurrency: cfg.Audit.Concurrency,
			ItemTimeout: cfg.Audit.ItemTimeout,
		}, persistence.NewGormItemRepository(db.DB), stockService, log)
		if err != nil {
			log.Fatal("Invalid audit configuration", zap.Error(err))
		}
		auditor.SetMetrics(ledgerMetrics)
		if err := auditor.Start(ctx); err != nil {
			log.Fatal("Failed to start reconciliation auditor", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.Auth)
	if !jwtService.Enabled() {
		log.Warn("auth.jwt_secret is empty, tenant tokens are not verified")
	}

	engine := router.NewEngine(router.EngineConfig{
		ServiceName:      cfg.Telemetry.ServiceName,
		Production:       cfg.App.Env == "production",
		HTTP:             cfg.HTTP,
		Logger:           log,
		TracingEnabled:   tel.traces.IsEnabled(),
		Meter:            tel.httpMeter,
		ProfilingEnabled: tel.profiler.IsEnabled(),
		JWT:              jwtService,
	}, router.Handlers{
		Inventory: handler.NewInventoryHandler(stockService),
		Orders:    handler.NewOrderHandler(orderService),
		Health:    handler.NewHealthHandler(db, checks...),
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if auditor != nil {
		if err := auditor.Stop(shutdownCtx); err != nil {
			log.Error("Reconciliation auditor did not stop", zap.Error(err))
		}
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus did not drain", zap.Error(err))
	}
	tel.shutdown(shutdownCtx)

	log.Info("Server exited gracefully")
}

type telemetryStack struct {
	traces    *telemetry.TracerProvider
	metrics   *telemetry.MeterProvider
	logs      *telemetry.LoggerProvider
	profiler  *telemetry.Profiler
	meter     metric.Meter
	httpMeter metric.Meter
	log       *zap.Logger
}

// setupTelemetry starts tracing, metrics, log export and profiling.
// Exporter failures are logged and leave that signal disabled.
func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) *telemetryStack {
	t := &telemetryStack{log: log}
	var err error

	t.traces, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Warn("Tracing disabled", zap.Error(err))
		t.traces, _ = telemetry.NewTracerProvider(ctx, telemetry.Config{}, log)
	}

	t.metrics, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Warn("Metrics disabled", zap.Error(err))
		t.metrics, _ = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{}, log)
	}
	if t.metrics.IsEnabled() {
		t.meter = t.metrics.Meter("qreats.inventory")
		t.httpMeter = t.metrics.Meter("http.server")
	}

	t.logs, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Warn("Log export disabled", zap.Error(err))
		t.logs, _ = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{}, log)
	}

	t.profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Profiling.ApplicationName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
		ProfileTypes:      cfg.Profiling.ProfileTypes,
	}, log)
	if err != nil {
		log.Warn("Profiling disabled", zap.Error(err))
		t.profiler, _ = telemetry.NewProfiler(telemetry.ProfilerConfig{}, log)
	}
	if cfg.Profiling.SpanProfiles && t.profiler.IsEnabled() {
		t.traces.EnableSpanProfiles()
	}

	return t
}

func (t *telemetryStack) shutdown(ctx context.Context) {
	if err := t.profiler.Stop(); err != nil {
		t.log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := t.traces.Shutdown(ctx); err != nil {
		t.log.Error("Error shutting down tracing", zap.Error(err))
	}
	if err := t.metrics.Shutdown(ctx); err != nil {
		t.log.Error("Error shutting down metrics", zap.Error(err))
	}
	if err := t.logs.Shutdown(ctx); err != nil {
		t.log.Error("Error shutting down log export", zap.Error(err))
	}
}

func migrate(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	// The migrator shares the gorm pool and is not closed here
	return m.Up()
}
