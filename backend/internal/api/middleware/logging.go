package middleware

import (
	"time"

	"passforge/backend/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPRecorder counts handled requests. *metrics.Metrics satisfies it.
type HTTPRecorder interface {
	ObserveHTTPRequest(method, route string, status int)
}

// Logger writes every request to the access log and errors or slow requests to
// the main log. Bodies are never logged since they carry passwords.
func Logger(logger, accessLogger *zap.SugaredLogger, recorder HTTPRecorder) gin.HandlerFunc {
	if accessLogger == nil {
		accessLogger = logger
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// Process request
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if recorder != nil {
			recorder.ObserveHTTPRequest(c.Request.Method, route, statusCode)
		}

		accessLogger.Infow("HTTP Request",
			"request_id", GetRequestID(c),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
			"protocol", c.Request.Proto,
			"status_code", statusCode,
			"latency", latency.String(),
			"user_agent", c.Request.UserAgent(),
			"client", auth.GetClientFromContext(c),
			"error_message", errorMessage,
		)

		// Log errors and slow requests to main log file
		switch {
		case statusCode >= 500:
			logger.Errorw("HTTP Error",
				"request_id", GetRequestID(c),
				"method", c.Request.Method,
				"path", path,
				"status", statusCode,
				"latency", latency.String(),
				"error", errorMessage,
			)
		case statusCode >= 400:
			logger.Warnw("HTTP Client Error",
				"request_id", GetRequestID(c),
				"method", c.Request.Method,
				"path", path,
				"status", statusCode,
				"latency", latency.String(),
			)
		case latency > 5*time.Second:
			logger.Warnw("Slow HTTP Request",
				"request_id", GetRequestID(c),
				"method", c.Request.Method,
				"path", path,
				"status", statusCode,
				"latency", latency.String(),
			)
		}
	}
}
