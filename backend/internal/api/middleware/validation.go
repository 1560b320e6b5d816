package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxBodyBytes caps request bodies; rule sets and passwords are small.
const MaxBodyBytes = 64 * 1024

// RequestValidator rejects non-JSON or oversized POST bodies.
func RequestValidator(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost {
			contentType := c.GetHeader("Content-Type")
			if !strings.Contains(contentType, "application/json") {
				logger.Warnw("Invalid content type", "content_type", contentType, "ip", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
					"error":   "invalid_content_type",
					"message": "Content-Type must be application/json",
				})
				return
			}

			if c.Request.ContentLength > MaxBodyBytes {
				logger.Warnw("Request too large", "bytes", c.Request.ContentLength, "ip", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
					"error":   "request_too_large",
					"message": "Request body too large",
				})
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
		}

		c.Next()
	}
}

// SecurityHeaders sets response headers that keep generated passwords out of caches.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'")
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")

		c.Next()
	}
}
