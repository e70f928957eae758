package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

func setupAPITest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.NewTestDB(t)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupAPI(router, api.Deps{DB: db}, "test-secret")

	return router, db
}

func tokenFor(t *testing.T, db *gorm.DB, user *models.User) string {
	t.Helper()

	auth := service.NewAuthService(db, "test-secret")
	token, err := auth.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router, _ := setupAPITest(t)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/auth/token/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["auth_token"])

	w = doJSON(router, http.MethodPost, "/api/v1/auth/token/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTagWritesRequireAdmin(t *testing.T) {
	router, db := setupAPITest(t)

	user := testhelpers.CreateUser(t, db, "alice")
	admin := testhelpers.CreateAdmin(t, db, "root")

	payload := gin.H{"name": "Breakfast", "color": "#E26C2D", "slug": "breakfast"}

	w := doJSON(router, http.MethodPost, "/api/v1/tags", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/tags", tokenFor(t, db, user), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/tags", tokenFor(t, db, admin), payload)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate slug is a conflict.
	w = doJSON(router, http.MethodPost, "/api/v1/tags", tokenFor(t, db, admin), payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Reads stay public.
	w = doJSON(router, http.MethodGet, "/api/v1/tags", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecipeCRUDOverHTTP(t *testing.T) {
	router, db := setupAPITest(t)

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")

	createPayload := gin.H{
		"name":         "Bread",
		"text":         "Bake it.",
		"cooking_time": 60,
		"ingredients":  []gin.H{{"id": flour.ID, "amount": 500}},
	}

	w := doJSON(router, http.MethodPost, "/api/v1/recipes", "", createPayload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/recipes", tokenFor(t, db, alice), createPayload)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Bread", created.Name)

	// Anonymous read works.
	w = doJSON(router, http.MethodGet, "/api/v1/recipes/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another user may not modify it.
	w = doJSON(router, http.MethodPatch, "/api/v1/recipes/"+created.ID, tokenFor(t, db, bob), gin.H{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPatch, "/api/v1/recipes/"+created.ID, tokenFor(t, db, alice), gin.H{"name": "Sourdough"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/v1/recipes/"+created.ID, tokenFor(t, db, alice), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/recipes/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeValidationOverHTTP(t *testing.T) {
	router, db := setupAPITest(t)

	alice := testhelpers.CreateUser(t, db, "alice")

	w := doJSON(router, http.MethodPost, "/api/v1/recipes", tokenFor(t, db, alice), gin.H{
		"name":         "Bread",
		"cooking_time": 60,
		"ingredients":  []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoriteEndpoints(t *testing.T) {
	router, db := setupAPITest(t)

	alice := testhelpers.CreateUser(t, db, "alice")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	bread := testhelpers.CreateRecipe(t, db, alice.ID, "Bread", map[uuid.UUID]int{flour.ID: 500})
	token := tokenFor(t, db, alice)

	w := doJSON(router, http.MethodPost, "/api/v1/recipes/"+bread.ID.String()+"/favorite", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var summary struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "Bread", summary.Name)

	// The flag shows up in listings for the owner.
	w = doJSON(router, http.MethodGet, "/api/v1/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_favorited":true`)

	// Anonymous viewers see it false.
	w = doJSON(router, http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_favorited":false`)

	w = doJSON(router, http.MethodDelete, "/api/v1/recipes/"+bread.ID.String()+"/favorite", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	router, db := setupAPITest(t)

	alice := testhelpers.CreateUser(t, db, "alice")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	bread := testhelpers.CreateRecipe(t, db, alice.ID, "Bread", map[uuid.UUID]int{flour.ID: 300})
	token := tokenFor(t, db, alice)

	w := doJSON(router, http.MethodPost, "/api/v1/recipes/"+bread.ID.String()+"/shopping_cart", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/recipes/download_shopping_cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_list.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doJSON(router, http.MethodGet, "/api/v1/recipes/download_shopping_cart?format=txt", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_list.txt")
	assert.Contains(t, w.Body.String(), "1. flour - 300 g.")
}

func TestSubscriptionEndpoints(t *testing.T) {
	router, db := setupAPITest(t)

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	token := tokenFor(t, db, alice)

	w := doJSON(router, http.MethodPost, "/api/v1/users/"+bob.ID.String()+"/subscribe", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate subscription conflicts.
	w = doJSON(router, http.MethodPost, "/api/v1/users/"+bob.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Self-subscription conflicts.
	w = doJSON(router, http.MethodPost, "/api/v1/users/"+alice.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/users/subscriptions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"bob"`)

	w = doJSON(router, http.MethodDelete, "/api/v1/users/"+bob.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	router, db := setupAPITest(t)

	alice := testhelpers.CreateUser(t, db, "alice")

	w := doJSON(router, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/users/me", tokenFor(t, db, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupAPITest(t)

	w := doJSON(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
