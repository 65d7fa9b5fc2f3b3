package middleware

import (
	"net/http"

	"github.com/jvoverseas/intake_backend/config"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// NewCORSConfig allows every origin in development and only the configured
// list otherwise. Requests without an Origin header are not affected.
func NewCORSConfig(cfg *config.Config) echoMiddleware.CORSConfig {
	cc := echoMiddleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With", TokenHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	if cfg.IsDevelopment() {
		cc.AllowOriginFunc = func(origin string) (bool, error) { return true, nil }
		return cc
	}

	cc.AllowOrigins = cfg.AllowedOrigins
	return cc
}

// GlobalCORS creates a global CORS middleware
func GlobalCORS(cfg *config.Config) echo.MiddlewareFunc {
	return echoMiddleware.CORSWithConfig(NewCORSConfig(cfg))
}
