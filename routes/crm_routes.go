package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/jvoverseas/intake_backend/controllers"
	"github.com/jvoverseas/intake_backend/middleware"
)

// RegisterCRMRoutes mounts the integration placeholders. Any signed-in
// user may reach them.
func RegisterCRMRoutes(e *echo.Echo, jwtSecret string, cc *controllers.CRMController) {
	auth := middleware.JWTMiddleware(jwtSecret)

	e.GET("/api/crm", cc.CRM, auth)
	e.GET("/api/lms", cc.LMS, auth)
}
