package jwtinspect

import (
	"github.com/gin-gonic/gin"
)

// GinErrorHandler writes the response for a request refused by the gin
// middleware. It must abort the gin context.
type GinErrorHandler func(c *gin.Context, err error)

// DefaultGinErrorHandler aborts with the same status codes and JSON bodies
// as DefaultErrorHandler.
func DefaultGinErrorHandler(c *gin.Context, err error) {
	status, body := errorResponse(err)
	c.AbortWithStatusJSON(status, body)
}

// Gin returns a gin handler applying the middleware's checks. Refused
// requests are passed to onError, or to DefaultGinErrorHandler when onError
// is nil.
//
// Example:
//
//	router := gin.New()
//	router.Use(mw.Gin(nil))
func (m *Middleware) Gin(onError GinErrorHandler) gin.HandlerFunc {
	if onError == nil {
		onError = DefaultGinErrorHandler
	}

	return func(c *gin.Context) {
		if m.skip(c.Request) {
			c.Next()
			return
		}

		ctx, err := m.check(c.Request)
		if err != nil {
			onError(c, err)
			return
		}
		if ctx != nil {
			c.Request = c.Request.Clone(ctx)
		}
		c.Next()
	}
}
