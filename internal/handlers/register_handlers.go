package handlers

import (
	"net/http"

	"github.com/SscSPs/commission_app/cmd/docs"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/middleware"
	"github.com/SscSPs/commission_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// metricsHandler may be nil.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metricsHandler http.Handler,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	RegisterV1Routes(v1, service)
}

// RegisterV1Routes registers every API route on rg. Exported for handler tests.
func RegisterV1Routes(rg *gin.RouterGroup, service *portssvc.ServiceContainer) {
	registerCommissionRoutes(rg, service.Commission)
	registerPickRoutes(rg, service.Transition)
	registerTransitionRoutes(rg, service.Transition)
	registerReturnRoutes(rg, service.Return)
	registerPrintRoutes(rg, service.PrintQueue)
	registerAuditRoutes(rg, service.Audit)
	registerTrashRoutes(rg, service.Trash)
	registerStockRoutes(rg, service.StockLedger)
	registerChangeRoutes(rg, service.Changes)
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
