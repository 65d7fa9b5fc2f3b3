package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jvoverseas/intake_backend/controllers"
	"github.com/jvoverseas/intake_backend/middleware"
)

// Controllers bundles every handler set the router mounts.
type Controllers struct {
	Public *controllers.PublicController
	Admin  *controllers.AdminController
	CRM    *controllers.CRMController
}

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(e *echo.Echo, jwtSecret string, users middleware.UserFinder, ctrl Controllers) {
	e.Match([]string{http.MethodGet, http.MethodHead}, "/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Running...")
	})
	e.Match([]string{http.MethodGet, http.MethodHead}, "/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	RegisterPublicRoutes(e, ctrl.Public)
	RegisterAdminRoutes(e, jwtSecret, users, ctrl.Admin)
	RegisterCRMRoutes(e, jwtSecret, ctrl.CRM)
}
