package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"officecal/internal/pkg/response"
)

// RequestLogger assigns a request id, logs each request on completion
// and recovers from handler panics.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf("panic request_id=%s method=%s path=%s error=%v stack=%s",
					requestID, c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				c.Abort()
				return
			}

			log.Printf("request request_id=%s method=%s path=%s status=%d employee_id=%d latency=%s",
				requestID, c.Request.Method, c.Request.URL.Path,
				c.Writer.Status(), c.GetInt64("employee_id"), time.Since(start))
		}()

		c.Next()
	}
}
