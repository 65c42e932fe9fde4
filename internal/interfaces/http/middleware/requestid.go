package middleware

import (
	"strings"

	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey names both the header and the gin context key
const RequestIDKey = "X-Request-ID"

// MaxRequestIDLength caps client-supplied request IDs
const MaxRequestIDLength = 128

// RequestID reuses a printable client ID or mints a UUID, echoes it back and
// attaches it to the request logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := cleanRequestID(c.GetHeader(RequestIDKey))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDKey, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func getRequestIDFromContext(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// cleanRequestID drops IDs with characters that could forge log lines.
func cleanRequestID(id string) string {
	if len(id) > MaxRequestIDLength {
		id = id[:MaxRequestIDLength]
	}
	if strings.IndexFunc(id, func(r rune) bool { return r < 0x21 || r > 0x7e }) >= 0 {
		return ""
	}
	return id
}
