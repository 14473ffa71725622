package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"restaurant-concierge/pkg/log"
)

// Middleware bundles the HTTP middlewares used by the server.
type Middleware struct {
	l log.Logger
}

func New(l log.Logger) Middleware {
	return Middleware{l: l}
}

// RequestID attaches a request id to the request context and echoes it in
// the X-Request-ID response header. Incoming ids are reused so ids stay
// stable across proxies.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}

		ctx := log.ContextWithRequestID(c.Request.Context(), reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", reqID)

		c.Next()
	}
}
