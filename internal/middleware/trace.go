package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"assessMatch/business/recommend"
)

const TraceIDHeader = "X-Trace-Id"

// TraceMiddleware assigns every request a trace id, stores it in the request
// context for service-layer logging and echoes it back in the response header.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(TraceIDHeader)
			if tid == "" {
				tid = uuid.NewString()
			}

			ctx := recommend.WithTraceID(c.Request().Context(), tid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(TraceIDHeader, tid)

			return next(c)
		}
	}
}
