package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"assessMatch/pkg/logger"
)

type errorBody struct {
	Message string `json:"message"`
}

// ErrorHandler is the central echo error handler for errors that escape the
// handlers (unknown routes, panics surfaced by Recover, malformed requests).
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
	}

	if jsonErr := c.JSON(code, errorBody{Message: message}); jsonErr != nil {
		logger.Error("writing error response", "error", jsonErr)
	}
}
