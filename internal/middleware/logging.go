package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// LoggingMiddleware tags every request with an ID and logs method, path,
// status and duration. Error details from lower layers are logged where they
// occur; this line is the request-level summary.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		log.Printf("%s %s %s -> %d (%s) request_id=%s",
			c.ClientIP(), c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start), requestID,
		)
	}
}
