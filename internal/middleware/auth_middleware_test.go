package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogulcan/clotrack/internal/app/models"
	"github.com/ogulcan/clotrack/internal/pkg/auth"
)

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "clotrack.test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role models.RoleType) string {
	t.Helper()
	accessToken, _, _, _, err := svc.GenerateTokenPair(&models.User{
		ID:       7,
		Email:    "user@tu.edu",
		RoleType: role,
	})
	require.NoError(t, err)
	return accessToken
}

func protectedRouter(m *AuthMiddleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append([]gin.HandlerFunc{m.JWTAuth()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	router.GET("/protected", chain...)
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService(t)
	router := protectedRouter(NewAuthMiddleware(svc))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, models.RoleInstructor))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":7`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := protectedRouter(NewAuthMiddleware(newTestJWTService(t)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	router := protectedRouter(NewAuthMiddleware(newTestJWTService(t)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Minute,
	})
	router := protectedRouter(NewAuthMiddleware(newTestJWTService(t)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, expired, models.RoleInstructor))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestRoleRequired_AllowsAnyListedRole(t *testing.T) {
	svc := newTestJWTService(t)
	m := NewAuthMiddleware(svc)
	router := protectedRouter(m, m.RoleRequired(
		string(models.RoleSiteAdmin), string(models.RoleInstitutionAdmin)))

	for _, role := range []models.RoleType{models.RoleSiteAdmin, models.RoleInstitutionAdmin} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, role))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "role %s should pass", role)
	}
}

func TestRoleRequired_RejectsOtherRoles(t *testing.T) {
	svc := newTestJWTService(t)
	m := NewAuthMiddleware(svc)
	router := protectedRouter(m, m.RoleRequired(string(models.RoleSiteAdmin)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, svc, models.RoleInstructor))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCurrentUserID_AbsentContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentUserID(c)
	assert.False(t, ok)
}
