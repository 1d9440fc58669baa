package handlers

import (
	"slices"

	"github.com/SscSPs/cashkeeper/cmd/docs"
	portssvc "github.com/SscSPs/cashkeeper/internal/core/ports/services"
	"github.com/SscSPs/cashkeeper/internal/middleware"
	"github.com/SscSPs/cashkeeper/internal/platform/config"
	"github.com/SscSPs/cashkeeper/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteOptions carries the optional collaborators of the HTTP surface.
type RouteOptions struct {
	Posthog *utils.PosthogClientWrapper
	// Limiter throttles the routes that write to the ledger; nil disables it.
	Limiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	registerValidators()

	status := &statusHandler{
		ledgerID:      cfg.LedgerID,
		storeDriver:   cfg.StoreDriver,
		ledgerService: services.Ledger,
		syncService:   services.Sync,
	}
	r.GET("/health", status.health)

	setupAPIV1Routes(r, services, status, opts)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	status *statusHandler,
	opts RouteOptions,
) {
	v1 := r.Group("/api/v1", middleware.SyncState(services.Sync), middleware.PosthogMiddleware(opts.Posthog))

	var mutation []gin.HandlerFunc
	if opts.Limiter != nil {
		mutation = append(mutation, middleware.RateLimit(opts.Limiter))
	}

	v1.GET("/status", status.getStatus)
	registerTransactionRoutes(v1, services.Ledger, services.Sync, mutation)
	registerCashRoutes(v1, services.Ledger, services.Sync, opts.Posthog, mutation)
	registerSnapshotRoutes(v1, services.Ledger, services.Sync)
	registerReportingRoutes(v1, services.Reporting, services.Sync)
	registerFeedRoutes(v1, services.Ledger)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// chain appends h to a route's middleware without sharing the backing array between routes.
func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	return append(slices.Clip(mw), h)
}
