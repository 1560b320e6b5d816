package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// A broken connection is not really a condition that warrants a panic stack trace.
		if isBrokenPipe(recovered) {
			logger.Errorw("Broken pipe error",
				"request_id", GetRequestID(c),
				"url", c.Request.URL.Path,
				"error", recovered,
			)
			// If the connection is dead, we can't write a status to it.
			_ = c.Error(fmt.Errorf("%v", recovered))
			c.Abort()
			return
		}

		// Request bodies may carry passwords, so only the method and path are logged.
		logger.Errorw("Recovery from panic",
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"url", c.Request.URL.Path,
			"error", recovered,
			"stack", string(debug.Stack()),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Something went wrong",
		})
	})
}

func isBrokenPipe(recovered interface{}) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	var ne *net.OpError
	if !errors.As(err, &ne) {
		return false
	}
	var se *os.SyscallError
	if !errors.As(ne.Err, &se) {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
