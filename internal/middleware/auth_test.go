package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

func authTestRouter(t *testing.T) (*gin.Engine, *service.AuthService, *models.User, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.NewTestDB(t)
	auth := service.NewAuthService(db, "test-secret")
	user := testhelpers.CreateUser(t, db, "alice")
	admin := testhelpers.CreateAdmin(t, db, "root")

	router := gin.New()
	router.GET("/required", middleware.AuthMiddleware(auth), func(c *gin.Context) {
		id, _ := middleware.CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	router.GET("/optional", middleware.OptionalAuthMiddleware(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": middleware.ViewerID(c) == nil})
	})
	router.GET("/admin", middleware.AuthMiddleware(auth), middleware.AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, auth, user, admin
}

func get(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRequired(t *testing.T) {
	router, auth, user, _ := authTestRouter(t)

	w := get(router, "/required", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(router, "/required", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)
	w = get(router, "/required", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	router, auth, user, _ := authTestRouter(t)

	// Anonymous requests pass through.
	w := get(router, "/optional", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)
	w = get(router, "/optional", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":false`)

	// A present but invalid token is rejected, not treated as anonymous.
	w = get(router, "/optional", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	router, auth, user, admin := authTestRouter(t)

	userToken, err := auth.GenerateToken(user)
	require.NoError(t, err)
	w := get(router, "/admin", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := auth.GenerateToken(admin)
	require.NoError(t, err)
	w = get(router, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
