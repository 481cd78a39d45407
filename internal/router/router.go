package router

import (
	"github.com/gin-gonic/gin"

	"scanvault/internal/handler"
	"scanvault/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	healthH *handler.HealthHandler,
	ownerH *handler.OwnerHandler,
	assetH *handler.AssetHandler,
	categoryH *handler.CategoryHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Owner registration happens before an owner context exists.
	v1.POST("/owners", ownerH.Register)

	// Everything else is scoped to the owner forwarded by the gateway.
	scoped := v1.Group("")
	scoped.Use(middleware.OwnerContext())

	owners := scoped.Group("/owners")
	owners.GET("/me", ownerH.Me)
	owners.PUT("/me/settings", ownerH.UpdateSettings)
	owners.PUT("/me/credentials", ownerH.StoreCredential)

	assets := scoped.Group("/assets")
	assets.POST("", assetH.Upload)
	assets.GET("", assetH.List)
	assets.GET("/export", assetH.Export)
	assets.GET("/:id", assetH.GetByID)
	assets.GET("/:id/pages", assetH.PageURLs)
	assets.POST("/:id/retry", assetH.Retry)
	assets.DELETE("/:id", assetH.Delete)

	categories := scoped.Group("/categories")
	categories.POST("", categoryH.Create)
	categories.GET("", categoryH.List)
	categories.GET("/:id", categoryH.GetByID)
	categories.PUT("/:id/priorities", categoryH.UpdateFieldPriorities)

	return r
}
