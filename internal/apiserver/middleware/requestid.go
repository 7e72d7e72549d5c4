package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the header carrying the request id in both
// directions.
const HeaderRequestID = "X-Request-Id"

// CtxKeyRequestID is the gin context key holding the request id.
const CtxKeyRequestID = "request_id"

// RequestID assigns every request a uuid, reusing the client-provided
// one when present, and echoes it in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(CtxKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFromContext returns the request id assigned by RequestID,
// or an empty string.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(CtxKeyRequestID)
}
