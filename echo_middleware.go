package jwtinspect

import (
	"github.com/labstack/echo/v4"
)

// EchoErrorHandler writes the response for a request refused by the echo
// middleware. Its return value is returned from the middleware.
type EchoErrorHandler func(c echo.Context, err error) error

// DefaultEchoErrorHandler responds with the same status codes and JSON bodies
// as DefaultErrorHandler.
func DefaultEchoErrorHandler(c echo.Context, err error) error {
	status, body := errorResponse(err)
	return c.JSON(status, body)
}

// Echo returns an echo middleware applying the middleware's checks. Refused
// requests are passed to onError, or to DefaultEchoErrorHandler when onError
// is nil.
//
// Example:
//
//	e := echo.New()
//	e.Use(mw.Echo(nil))
func (m *Middleware) Echo(onError EchoErrorHandler) echo.MiddlewareFunc {
	if onError == nil {
		onError = DefaultEchoErrorHandler
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			if m.skip(r) {
				return next(c)
			}

			ctx, err := m.check(r)
			if err != nil {
				return onError(c, err)
			}
			if ctx != nil {
				c.SetRequest(r.Clone(ctx))
			}
			return next(c)
		}
	}
}
