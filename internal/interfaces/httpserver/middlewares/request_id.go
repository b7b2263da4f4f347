package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an identifier for log correlation. An
// inbound X-Request-Id is kept and echoed back; otherwise one is minted.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			c.Request.Header.Set(requestIDHeader, id)
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the identifier RequestID stored for this
// request, or an empty string when the middleware did not run.
func RequestIDFromContext(c *gin.Context) string {
	val, _ := c.Get(requestIDHeader)
	id, _ := val.(string)
	return id
}
