// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/jvoverseas/intake_backend/models"
	"github.com/labstack/echo/v4"
)

// Context keys set by JWTMiddleware.
const (
	ContextUserID = "userId"
	ContextRole   = "role"
)

// TokenHeader is the header admin clients send the session token in.
const TokenHeader = "x-auth-token"

var ErrMissingSecret = errors.New("JWT_SECRET is not configured")

// Claims identifies the session holder.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// GenerateJWT signs an HS256 session token valid for ttl.
func GenerateJWT(secret, userID, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry.
func ParseToken(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractToken looks in x-auth-token, then Authorization: Bearer, then ?token=
// (browsers cannot set headers on websocket upgrades).
func ExtractToken(c echo.Context) string {
	if t := strings.TrimSpace(c.Request().Header.Get(TokenHeader)); t != "" {
		return t
	}
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return c.QueryParam("token")
}

// JWTMiddleware rejects requests without a valid session token.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ExtractToken(c)
			if tokenString == "" {
				return c.JSON(http.StatusUnauthorized, models.MessageResponse{Msg: "No token, authorization denied"})
			}

			claims, err := ParseToken(secret, tokenString)
			if err != nil {
				c.Logger().Errorf("Token verification failed: %v", err)
				return c.JSON(http.StatusUnauthorized, models.MessageResponse{Msg: "Token is not valid"})
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)
			return next(c)
		}
	}
}

func GetUserIDFromToken(c echo.Context) string {
	userID, _ := c.Get(ContextUserID).(string)
	return userID
}

func GetRoleFromToken(c echo.Context) string {
	role, _ := c.Get(ContextRole).(string)
	return role
}
