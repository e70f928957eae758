package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/apperr"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
)

func respondStatus(t *testing.T, err error) int {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w.Code
}

func TestRespondErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	assert.Equal(t, http.StatusBadRequest, respondStatus(t, apperr.Validation("bad input")))
	assert.Equal(t, http.StatusNotFound, respondStatus(t, apperr.NotFound("missing")))
	assert.Equal(t, http.StatusForbidden, respondStatus(t, apperr.Authorization("not yours")))
	assert.Equal(t, http.StatusConflict, respondStatus(t, apperr.Conflict("duplicate")))
}

func TestRespondErrorDuplicateKeyFromStorage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.NewTestDB(t)

	follower := testhelpers.CreateUser(t, db, "follower")
	author := testhelpers.CreateUser(t, db, "author")

	// Two racing subscribe requests can both pass the duplicate pre-check;
	// the loser's insert trips the unique pair index. That error must map to
	// a conflict, not a server error.
	require.NoError(t, db.Create(&models.Subscribe{UserID: follower.ID, AuthorID: author.ID}).Error)
	err := db.Create(&models.Subscribe{UserID: follower.ID, AuthorID: author.ID}).Error
	require.Error(t, err)

	assert.Equal(t, http.StatusConflict, respondStatus(t, err))
}
