package routes

import (
	"time"

	"stayline/handlers"
	"stayline/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCallRoutes registers the call lifecycle endpoints the telephony
// layer hits when a call connects and hangs up.
func RegisterCallRoutes(r *gin.Engine) {
	calls := r.Group("/api/v1/calls")
	{
		calls.Use(middleware.JWTAuthMiddleware())
		calls.POST("/start", handlers.StartCall)
		calls.POST("/end", handlers.EndCall)
	}
}

// RegisterToolRoutes registers the conversation tool endpoints. Every tool
// answers 200 with a speech string.
func RegisterToolRoutes(r *gin.Engine) {
	tools := r.Group("/api/v1/tools")
	{
		tools.Use(middleware.JWTAuthMiddleware())
		tools.POST("/nearest-properties", handlers.FindNearestProperty)
		tools.POST("/budget-properties", handlers.PropertiesByBudget)
		tools.POST("/property-info", handlers.QueryPropertyInformation)
		tools.POST("/room-types", handlers.GetRoomTypes)
		tools.POST("/availability", handlers.GetRoomAvailability)
		tools.POST("/all-availability", handlers.GetAllRoomAvailability)
		tools.POST("/explore-more", handlers.ExploreMoreProperties)
		tools.POST("/update-profile", handlers.UpdateUserProfile)
		tools.POST("/schedule-visit", handlers.ScheduleSiteVisit)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/v1/admin")
	{
		admin.Use(middleware.JWTAuthMiddleware())
		admin.POST("/catalog/reload", handlers.ReloadCatalog)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCallRoutes(r)
	RegisterToolRoutes(r)
	RegisterHealthRoute(r)
	RegisterAdminRoutes(r)
}
