package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nextstop/nextstop-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "a3b54f3c-1111-4a8d-9c6e-000000000001"

func setupTestRouter(jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	chain := append([]gin.HandlerFunc{AuthMiddleware(jwtService)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		userCtx, _ := GetUserContext(c)
		c.JSON(http.StatusOK, userCtx)
	})
	router.GET("/protected", chain...)
	return router
}

func newTestJWTService(accessExpiry time.Duration) *jwt.Service {
	return jwt.NewService("test-secret", "test-refresh-secret", accessExpiry, 7*24*time.Hour)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := setupTestRouter(jwtService)

	token, err := jwtService.GenerateAccessToken(testUserID, "nimal@example.com", "passenger")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var userCtx UserContext
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &userCtx))
	assert.Equal(t, testUserID, userCtx.UserID)
	assert.Equal(t, "passenger", userCtx.Role)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := setupTestRouter(newTestJWTService(time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := setupTestRouter(jwtService)

	token, err := jwtService.GenerateAccessToken(testUserID, "nimal@example.com", "passenger")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	router := setupTestRouter(jwtService)

	token, err := jwtService.GenerateAccessToken(testUserID, "nimal@example.com", "passenger")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_expired")
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := setupTestRouter(jwtService)

	// A refresh token must not grant access to protected routes.
	token, err := jwtService.GenerateRefreshToken(testUserID, "nimal@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := setupTestRouter(jwtService, RequireRole("operator", "admin"))

	token, err := jwtService.GenerateAccessToken(testUserID, "op@example.com", "operator")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	jwtService := newTestJWTService(time.Hour)
	router := setupTestRouter(jwtService, RequireRole("admin"))

	token, err := jwtService.GenerateAccessToken(testUserID, "nimal@example.com", "passenger")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
