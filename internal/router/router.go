package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "menulens/docs"
	"menulens/internal/domain"
	"menulens/internal/handler"
	"menulens/internal/middleware"
	"menulens/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	scanH *handler.ScanHandler,
	restaurantH *handler.RestaurantHandler,
	feedbackH *handler.FeedbackHandler,
	userH *handler.UserHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)

	// Scan routes
	scans := protected.Group("/scans")
	scans.POST("", scanH.Upload)
	scans.GET("", scanH.List)
	scans.GET("/:id", scanH.GetByID)
	scans.GET("/:id/export/csv", scanH.ExportCSV)
	scans.GET("/:id/export/xlsx", scanH.ExportXLSX)
	scans.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), scanH.Delete)

	// Restaurant routes
	restaurants := protected.Group("/restaurants")
	restaurants.POST("", restaurantH.Create)
	restaurants.GET("", restaurantH.List)
	restaurants.GET("/:id", restaurantH.GetByID)
	restaurants.PUT("/:id", restaurantH.Update)
	restaurants.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), restaurantH.Delete)

	// Feedback routes
	feedback := protected.Group("/feedback")
	feedback.POST("", feedbackH.Submit)
	feedback.GET("", feedbackH.ListByImage)
	feedback.GET("/:id", feedbackH.GetByID)
	feedback.POST("/relearn", middleware.RequireRole(domain.RoleAdmin), feedbackH.Relearn)

	// User management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Stats
	protected.GET("/stats", statsH.GetStats)

	return r
}
