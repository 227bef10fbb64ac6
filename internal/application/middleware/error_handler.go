package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-api/internal/apperr"
	"weather-api/internal/domain/model"
	"weather-api/pkg/log"
)

// NewHTTPErrorHandler maps every failure to the standard error body
// {error, status, status_code, timestamp}. Tagged failures keep their
// message and status; anything unrecognized becomes a generic 500 with
// the full detail logged server-side only.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				log.Errorf("Original error details: %v", appErr.Err)
			}
			writeError(c, appErr.Message, appErr.StatusCode)
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			writeError(c, fmt.Sprintf("%v", httpErr.Message), httpErr.Code)
			return
		}

		log.Errorf("Unhandled error: %v", err)
		writeError(c, "Internal server error", http.StatusInternalServerError)
	}
}

func writeError(c echo.Context, message string, statusCode int) {
	if err := c.JSON(statusCode, model.NewErrorResponse(message, statusCode)); err != nil {
		log.Errorf("Failed to write error response: %v", err)
	}
}
