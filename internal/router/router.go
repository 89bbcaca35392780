package router

import (
	"github.com/gin-gonic/gin"

	"millgate/internal/config"
	"millgate/internal/domain"
	"millgate/internal/handler"
	"millgate/internal/middleware"
	"millgate/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	orgH *handler.OrganizationHandler,
	userH *handler.UserHandler,
	masterH *handler.MasterDataHandler,
	locationH *handler.LocationHandler,
	rateH *handler.SeasonRateHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Health)
	r.GET("/readyz", healthH.Ready)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Everything under /admin requires a valid JWT and organization context.
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.OrgGuard())

	admin.GET("/me", authH.Me)

	// Organization management (admin role)
	orgs := admin.Group("/organizations", middleware.RequireRole(domain.RoleAdmin))
	orgs.POST("", orgH.Create)
	orgs.GET("", orgH.List)
	orgs.GET("/:id", orgH.GetByID)
	orgs.PUT("/:id", orgH.Update)

	// User management (admin role)
	users := admin.Group("/users", middleware.RequireRole(domain.RoleAdmin))
	users.POST("", userH.Create)
	users.GET("", userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", userH.Delete)

	// Master data: crop years are append-only, the rest is full CRUD.
	admin.POST("/crop-years", middleware.RequireRole(domain.RoleAdmin), masterH.CreateCropYear)
	admin.GET("/crop-years", masterH.ListCropYears)

	admin.POST("/rice-types", middleware.RequireRole(domain.RoleAdmin), masterH.CreateRiceType)
	admin.GET("/rice-types", masterH.ListRiceTypes)
	admin.PUT("/rice-types/:id", middleware.RequireRole(domain.RoleAdmin), masterH.UpdateRiceType)
	admin.DELETE("/rice-types/:id", middleware.RequireRole(domain.RoleAdmin), masterH.DeleteRiceType)
	admin.GET("/rice-types/:id/varieties", masterH.ListRiceVarieties)

	admin.POST("/rice-varieties", middleware.RequireRole(domain.RoleAdmin), masterH.CreateRiceVariety)
	admin.DELETE("/rice-varieties/:id", middleware.RequireRole(domain.RoleAdmin), masterH.DeleteRiceVariety)

	admin.POST("/by-products", middleware.RequireRole(domain.RoleAdmin), masterH.CreateByProduct)
	admin.GET("/by-products", masterH.ListByProducts)
	admin.PUT("/by-products/:id", middleware.RequireRole(domain.RoleAdmin), masterH.UpdateByProduct)
	admin.DELETE("/by-products/:id", middleware.RequireRole(domain.RoleAdmin), masterH.DeleteByProduct)

	// Locations
	locations := admin.Group("/locations")
	locations.POST("", middleware.RequireRole(domain.RoleAdmin), locationH.Create)
	locations.GET("", locationH.List)
	locations.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), locationH.Update)
	locations.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), locationH.Delete)
	locations.POST("/villages/import", middleware.RequireRole(domain.RoleAdmin), locationH.ImportVillages)

	// Season bag rates: operators maintain these day to day, so no admin gate
	// on read or save; resets stay admin-only.
	rates := admin.Group("/season-bag-rates")
	rates.GET("", rateH.List)
	rates.POST("", rateH.Upsert)
	rates.POST("/reset", middleware.RequireRole(domain.RoleAdmin), rateH.Reset)
	rates.GET("/export", rateH.Export)

	return r
}
