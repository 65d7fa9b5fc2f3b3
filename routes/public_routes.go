package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/jvoverseas/intake_backend/controllers"
)

// RegisterPublicRoutes mounts the unauthenticated website endpoints.
func RegisterPublicRoutes(e *echo.Echo, pc *controllers.PublicController) {
	public := e.Group("/api/public")

	public.POST("/intake", pc.Intake)
	public.POST("/eligibility-check", pc.CheckEligibility)
	public.POST("/comprehensive-eligibility", pc.ComprehensiveEligibility)
	public.POST("/chat-message", pc.ChatMessage)
	public.POST("/chat-conversation", pc.ChatConversation)
	public.GET("/content", pc.GetContent)
}
