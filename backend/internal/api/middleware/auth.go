package middleware

import (
	"errors"
	"net/http"
	"strings"

	"passforge/backend/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthRequired validates the bearer token and stores its claims on the context.
func AuthRequired(tokens *auth.TokenService, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warnw("Missing authorization header",
				"request_id", GetRequestID(c),
				"client_ip", c.ClientIP(),
			)
			c.Header("WWW-Authenticate", `Bearer realm="passforge"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header required",
			})
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			c.Header("WWW-Authenticate", `Bearer realm="passforge"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
			})
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(tokenString))
		if err != nil {
			var message, errorCode string
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				message, errorCode = "Token has expired", "token_expired"
			case errors.Is(err, auth.ErrTokenMalformed):
				message, errorCode = "Malformed token", "token_malformed"
			default:
				message, errorCode = "Invalid token", "token_invalid"
			}

			logger.Warnw("Token validation failed",
				"request_id", GetRequestID(c),
				"client_ip", c.ClientIP(),
				"error", err,
			)
			c.Header("WWW-Authenticate", `Bearer realm="passforge", error="invalid_token"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   errorCode,
				"message": message,
			})
			return
		}

		auth.SetClaimsInContext(c, claims)
		c.Next()
	}
}

// RequireScope rejects authenticated callers whose token lacks scope. Requests
// without claims pass through, so it is a no-op when auth is disabled.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.GetClaimsFromContext(c)
		if ok && !claims.HasScope(scope) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "insufficient_scope",
				"message": "Token does not grant the '" + scope + "' scope",
			})
			return
		}
		c.Next()
	}
}
