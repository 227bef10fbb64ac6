package middleware

import (
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground validation into echo's
// c.Validate. Validation failures become 400s before any handler or
// gateway runs.
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	// Registration only fails for a blank tag or nil func.
	_ = v.RegisterValidation("cityname", validCityName)
	return &RequestValidator{validator: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "city must be 2-50 characters: letters, spaces and hyphens only")
	}
	return nil
}

// validCityName allows Unicode letters, spaces and hyphens.
func validCityName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, r := range value {
		if unicode.IsLetter(r) || r == ' ' || r == '-' {
			continue
		}
		return false
	}
	return true
}
