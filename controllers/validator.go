package controllers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jvoverseas/intake_backend/models"
	"github.com/jvoverseas/intake_backend/services/notification"
	"github.com/labstack/echo/v4"
)

// CustomValidator plugs go-playground/validator into echo and reports
// fields by their JSON names.
type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i interface{}) error { return cv.v.Struct(i) }

// ToFieldErrors maps validator.ValidationErrors to itemized field errors.
func ToFieldErrors(err error) []models.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []models.FieldError{{Field: "_", Message: err.Error()}}
	}

	out := make([]models.FieldError, 0, len(ve))
	for _, e := range ve {
		field := fieldPath(e.Namespace())
		label := notification.HumanizeKey(e.Field())

		var msg string
		switch e.Tag() {
		case "required":
			msg = label + " is required"
		case "email":
			msg = "Please include a valid email"
		case "numeric":
			msg = label + " must be numeric"
		case "oneof":
			msg = label + " must be one of: " + strings.Join(strings.Fields(e.Param()), ", ")
		case "min":
			msg = label + " must be at least " + e.Param() + " characters"
		default:
			msg = label + " failed " + e.Tag() + " validation"
		}
		out = append(out, models.FieldError{Field: field, Message: msg})
	}
	return out
}

// fieldPath drops the root struct name: "Req.courseDetails.intakeMonth" -> "courseDetails.intakeMonth".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// bindAndValidate writes the 400 response itself and returns false when
// the request is unusable.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{
			Errors: []models.FieldError{{Field: "_", Message: "Invalid request body"}},
		})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{Errors: ToFieldErrors(err)})
	}
	return true, nil
}
