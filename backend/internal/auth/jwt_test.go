package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndValidate(t *testing.T) {
	svc := NewTokenService(testSecret, "passforge", time.Hour)

	token, expires, err := svc.Issue("ci-runner", []string{ScopeGenerate})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ci-runner", claims.Client)
	assert.Equal(t, "ci-runner", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.HasScope(ScopeGenerate))
	assert.False(t, claims.HasScope(ScopeAnalyze))
}

func TestIssue_DefaultsToAllScopes(t *testing.T) {
	svc := NewTokenService(testSecret, "passforge", time.Hour)

	token, _, err := svc.Issue("ops", nil)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.ElementsMatch(t, AllScopes, claims.Scopes)
}

func TestIssue_Errors(t *testing.T) {
	svc := NewTokenService(testSecret, "passforge", time.Hour)

	_, _, err := svc.Issue("", nil)
	assert.ErrorIs(t, err, ErrNoClient)

	_, _, err = svc.Issue("ops", []string{"admin"})
	assert.ErrorIs(t, err, ErrUnknownScope)
	assert.Contains(t, err.Error(), "admin")
}

func TestValidate_Failures(t *testing.T) {
	svc := NewTokenService(testSecret, "passforge", time.Hour)
	good, _, err := svc.Issue("ops", nil)
	require.NoError(t, err)

	expiredSvc := NewTokenService(testSecret, "passforge", time.Hour)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredSvc.Issue("ops", nil)
	require.NoError(t, err)

	otherKey := NewTokenService("ffffffffffffffffffffffffffffffff", "passforge", time.Hour)
	forged, _, err := otherKey.Issue("ops", nil)
	require.NoError(t, err)

	otherIssuer := NewTokenService(testSecret, "someone-else", time.Hour)
	foreign, _, err := otherIssuer.Issue("ops", nil)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Client: "ops"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrTokenNotFound},
		{"garbage", "not-a-token", ErrTokenMalformed},
		{"expired", expired, ErrTokenExpired},
		{"wrong key", forged, ErrTokenInvalid},
		{"wrong issuer", foreign, ErrTokenInvalid},
		{"alg none", unsigned, ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = svc.Validate(good)
	assert.NoError(t, err)
}

func TestClaimsContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetClaimsFromContext(c)
	assert.False(t, ok)
	assert.Empty(t, GetClientFromContext(c))

	SetClaimsInContext(c, &Claims{Client: "ops"})
	claims, ok := GetClaimsFromContext(c)
	require.True(t, ok)
	assert.Equal(t, "ops", claims.Client)
	assert.Equal(t, "ops", GetClientFromContext(c))
}
