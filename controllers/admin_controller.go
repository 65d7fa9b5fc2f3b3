package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jvoverseas/intake_backend/middleware"
	"github.com/jvoverseas/intake_backend/models"
	"github.com/jvoverseas/intake_backend/services/adminauth"
	"github.com/jvoverseas/intake_backend/services/mailer"
	"github.com/jvoverseas/intake_backend/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// AuthService is the two-step admin login.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	VerifyOTP(ctx context.Context, email, code string) (*adminauth.Session, error)
}

type LeadLister interface {
	List(ctx context.Context) ([]models.Lead, error)
}

// DeliveryHistory exposes recent email attempts.
type DeliveryHistory interface {
	RecentAttempts(ctx context.Context, limit int) ([]mailer.Attempt, error)
}

const (
	defaultEmailLogLimit = 50
	maxEmailLogLimit     = 500
)

type AdminController struct {
	auth       AuthService
	leads      LeadLister
	deliveries DeliveryHistory
	hub        *websocket.Hub
	logger     *log.Logger
}

// NewAdminController wires the admin endpoints. hub may be nil, which
// disables the live lead feed.
func NewAdminController(auth AuthService, leads LeadLister, deliveries DeliveryHistory, hub *websocket.Hub) *AdminController {
	return &AdminController{
		auth:       auth,
		leads:      leads,
		deliveries: deliveries,
		hub:        hub,
		logger:     log.New("admin"),
	}
}

func (ac *AdminController) serverError(c echo.Context, err error) error {
	ac.logger.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, models.MessageResponse{Msg: "Server Error"})
}

// Login checks the password and sends an OTP to the registered email.
func (ac *AdminController) Login(c echo.Context) error {
	var req models.AdminLoginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	err := ac.auth.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, adminauth.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, models.MessageResponse{Msg: "Invalid Credentials"})
	case err != nil:
		return ac.serverError(c, err)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Msg: "OTP sent to registered email"})
}

// VerifyOTP exchanges a valid OTP for a session token.
func (ac *AdminController) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	session, err := ac.auth.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	switch {
	case errors.Is(err, adminauth.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, models.MessageResponse{Msg: "Invalid Credentials"})
	case errors.Is(err, adminauth.ErrNoPendingOTP):
		return c.JSON(http.StatusBadRequest, models.MessageResponse{Msg: "No OTP request found. Please login again."})
	case errors.Is(err, adminauth.ErrInvalidOTP):
		return c.JSON(http.StatusBadRequest, models.MessageResponse{Msg: "Invalid OTP"})
	case errors.Is(err, adminauth.ErrOTPExpired):
		return c.JSON(http.StatusBadRequest, models.MessageResponse{Msg: "OTP has expired"})
	case err != nil:
		return ac.serverError(c, err)
	}

	return c.JSON(http.StatusOK, models.TokenResponse{Token: session.Token})
}

// GetLeads lists every lead, newest first.
func (ac *AdminController) GetLeads(c echo.Context) error {
	leads, err := ac.leads.List(c.Request().Context())
	if err != nil {
		return ac.serverError(c, err)
	}
	return c.JSON(http.StatusOK, leads)
}

// GetEmailLog returns recent delivery attempts. ?limit= caps the count.
func (ac *AdminController) GetEmailLog(c echo.Context) error {
	limit := defaultEmailLogLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
				Errors: []models.FieldError{{Field: "limit", Message: "Limit must be a positive integer"}},
			})
		}
		limit = n
	}
	if limit > maxEmailLogLimit {
		limit = maxEmailLogLimit
	}

	attempts, err := ac.deliveries.RecentAttempts(c.Request().Context(), limit)
	if err != nil {
		return ac.serverError(c, err)
	}
	return c.JSON(http.StatusOK, attempts)
}

// LeadFeed upgrades to a websocket that streams lead_created events.
func (ac *AdminController) LeadFeed(c echo.Context) error {
	if ac.hub == nil {
		return c.JSON(http.StatusServiceUnavailable, models.MessageResponse{Msg: "Lead feed unavailable"})
	}
	return websocket.HandleWebSocket(c, ac.hub, middleware.GetUserIDFromToken(c))
}
