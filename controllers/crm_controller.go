package controllers

import (
	"net/http"

	"github.com/jvoverseas/intake_backend/models"
	"github.com/labstack/echo/v4"
)

// CRMController holds the placeholders for the CRM and LMS integrations.
type CRMController struct{}

func NewCRMController() *CRMController {
	return &CRMController{}
}

func (cc *CRMController) CRM(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, models.MessageResponse{Msg: "CRM module not implemented yet"})
}

func (cc *CRMController) LMS(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, models.MessageResponse{Msg: "LMS module not implemented yet"})
}
