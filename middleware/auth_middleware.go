// middleware/auth_middleware.go
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/jvoverseas/intake_backend/models"
	"github.com/jvoverseas/intake_backend/repositories"
	"github.com/labstack/echo/v4"
)

// UserFinder loads the account behind a session token.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// RequireRole checks the role carried in the token without a database round trip.
func RequireRole(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := GetRoleFromToken(c)
			if role == "" {
				return c.JSON(http.StatusUnauthorized, models.MessageResponse{Msg: "No token, authorization denied"})
			}
			for _, r := range allowed {
				if r == role {
					return next(c)
				}
			}
			c.Logger().Warnf("Access denied for role %s on %s", role, c.Request().URL.Path)
			return c.JSON(http.StatusForbidden, models.MessageResponse{Msg: "Access denied. Admins only."})
		}
	}
}

// RequireAdmin re-reads the user so revoked or demoted accounts lose
// access before their token expires.
func RequireAdmin(users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := users.FindByID(c.Request().Context(), GetUserIDFromToken(c))
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, models.MessageResponse{Msg: "User not found"})
				}
				c.Logger().Errorf("Admin middleware error: %v", err)
				return c.JSON(http.StatusInternalServerError, models.MessageResponse{Msg: "Server Error"})
			}

			if user.Role != models.RoleSuperAdmin {
				c.Logger().Warnf("Access denied. User %s tried to access admin route.", user.Email)
				return c.JSON(http.StatusForbidden, models.MessageResponse{Msg: "Access denied. Admins only."})
			}
			return next(c)
		}
	}
}
