package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/qreats/backend/docs"
	"github.com/qreats/backend/internal/infrastructure/auth"
	"github.com/qreats/backend/internal/infrastructure/config"
	"github.com/qreats/backend/internal/infrastructure/logger"
	"github.com/qreats/backend/internal/interfaces/http/handler"
	"github.com/qreats/backend/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers served by the engine
type Handlers struct {
	Inventory *handler.InventoryHandler
	Orders    *handler.OrderHandler
	Health    *handler.HealthHandler
}

// EngineConfig carries the cross-cutting settings of the HTTP engine
type EngineConfig struct {
	ServiceName string
	Production  bool
	HTTP        config.HTTPConfig
	Logger      *zap.Logger

	TracingEnabled bool
	// TracerProvider defaults to the global provider
	TracerProvider   trace.TracerProvider
	Meter            metric.Meter
	ProfilingEnabled bool
	JWT              *auth.JWTService
}

// NewEngine assembles the gin engine: global middleware, health and
// documentation endpoints, and the tenant-scoped /api/v1 routes.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			cfg.Logger.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
			_ = engine.SetTrustedProxies(nil)
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	maxBody := cfg.HTTP.MaxBodySize
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSOrigins

	engine.Use(
		logger.Recovery(cfg.Logger),
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		middleware.Secure(cfg.Production),
		middleware.CORSWithConfig(cors),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     cfg.TracingEnabled,
			SkipPaths:   []string{"/health"},
			Provider:    cfg.TracerProvider,
		}),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(cfg.Meter, cfg.Logger),
		middleware.BodyLimit(maxBody),
	)
	engine.NoRoute(handler.NotFound)

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
	}

	docs.SwaggerInfo.BasePath = "/api/v1"
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.HTTP.SwaggerEnabled,
			AllowedIPs: cfg.HTTP.SwaggerAllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := NewRouter(engine, WithMiddleware(
		middleware.JWTAuth(cfg.JWT),
		middleware.Tenant(),
		middleware.TracingAttributeInjector(),
		middleware.Profiling(cfg.ProfilingEnabled),
	))
	if h.Inventory != nil {
		r.Register(InventoryRoutes(h.Inventory))
	}
	if h.Orders != nil {
		r.Register(OrderRoutes(h.Orders))
		r.Register(RecipeRoutes(h.Orders))
	}
	r.Setup()

	return engine
}

// InventoryRoutes groups the inventory item endpoints
func InventoryRoutes(h *handler.InventoryHandler) *DomainGroup {
	return NewDomainGroup("inventory", "/inventory/items").
		POST("", h.CreateItem).
		GET("/:id/stock", h.GetStock).
		POST("/:id/batches", h.ReceiveBatch).
		GET("/:id/batches", h.ListBatches).
		GET("/:id/ledger", h.ListLedger).
		GET("/:id/reconciliation", h.Reconcile).
		POST("/:id/adjustments", h.Adjust)
}

// OrderRoutes groups the order endpoints
func OrderRoutes(h *handler.OrderHandler) *DomainGroup {
	return NewDomainGroup("orders", "/orders").
		POST("", h.CreateOrder).
		GET("/:id", h.GetOrder).
		POST("/:id/refund", h.RefundOrder)
}

// RecipeRoutes groups the recipe endpoints
func RecipeRoutes(h *handler.OrderHandler) *DomainGroup {
	return NewDomainGroup("recipes", "/recipes").
		POST("", h.CreateRecipe)
}
