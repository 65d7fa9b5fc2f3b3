package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/jvoverseas/intake_backend/controllers"
	"github.com/jvoverseas/intake_backend/middleware"
	"github.com/jvoverseas/intake_backend/models"
)

// RegisterAdminRoutes sets up all admin-related routes
func RegisterAdminRoutes(e *echo.Echo, jwtSecret string, users middleware.UserFinder, ac *controllers.AdminController) {
	admin := e.Group("/api/admin")

	// Public routes (no auth required)
	admin.POST("/login", ac.Login)
	admin.POST("/verify-otp", ac.VerifyOTP)

	// Browsers cannot set headers on the upgrade request, so the feed
	// takes its token from ?token= and trusts the role claim.
	admin.GET("/ws", ac.LeadFeed,
		middleware.JWTMiddleware(jwtSecret),
		middleware.RequireRole(models.RoleSuperAdmin))

	protected := admin.Group("")
	protected.Use(middleware.JWTMiddleware(jwtSecret))
	protected.Use(middleware.RequireAdmin(users))

	protected.GET("/leads", ac.GetLeads)
	protected.GET("/email-log", ac.GetEmailLog)
}
