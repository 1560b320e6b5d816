package auth

import (
	"github.com/gin-gonic/gin"
)

// Context keys for the authenticated caller
const (
	ClientKey = "auth_client"
	ClaimsKey = "auth_claims"
)

// SetClaimsInContext stores the verified claims on the request.
func SetClaimsInContext(c *gin.Context, claims *Claims) {
	c.Set(ClaimsKey, claims)
	c.Set(ClientKey, claims.Client)
}

// GetClaimsFromContext returns the verified claims, if the request carried a token.
func GetClaimsFromContext(c *gin.Context) (*Claims, bool) {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*Claims); ok {
			return claims, true
		}
	}
	return nil, false
}

// GetClientFromContext returns the client name of the authenticated caller.
func GetClientFromContext(c *gin.Context) string {
	if v, exists := c.Get(ClientKey); exists {
		if client, ok := v.(string); ok {
			return client
		}
	}
	return ""
}
