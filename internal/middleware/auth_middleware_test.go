package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derya/gradepoint/internal/app/models"
	"github.com/derya/gradepoint/internal/pkg/auth"
)

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "gradepoint",
	})
}

func newProtectedRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(jwtService).JWTAuth(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func issueAccessToken(t *testing.T, jwtService *auth.JWTService) string {
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:    7,
		Email: "student@example.com",
	})
	require.NoError(t, err)
	return accessToken
}

func getProtected(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := newProtectedRouter(newTestJWTService(time.Hour))

	w := getProtected(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_007")
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := newProtectedRouter(jwtService)

	w := getProtected(router, "Bearer "+issueAccessToken(t, jwtService))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":7`)
}

func TestJWTAuthRawTokenWithoutBearerPrefix(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := newProtectedRouter(jwtService)

	w := getProtected(router, issueAccessToken(t, jwtService))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	router := newProtectedRouter(newTestJWTService(time.Hour))

	w := getProtected(router, "Bearer not-a-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_004")
}

func TestJWTAuthExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	router := newProtectedRouter(jwtService)

	w := getProtected(router, "Bearer "+issueAccessToken(t, jwtService))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_005")
}
