package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/apperr"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

func TestRegisterCreatesCollections(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := service.NewAuthService(db, "test-secret")

	user, err := auth.Register(context.Background(), types.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	var favorites models.FavoriteSet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&favorites).Error)

	var cart models.ShoppingCart
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cart).Error)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := auth.Register(ctx, types.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = auth.Register(ctx, types.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "password123",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = auth.Register(ctx, types.RegisterRequest{
		Email:    "alice2@example.com",
		Username: "alice",
		Password: "password123",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestLogin(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := service.NewAuthService(db, "test-secret")
	ctx := context.Background()
	testhelpers.CreateUser(t, db, "alice")

	token, err := auth.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)

	_, err = auth.Login(ctx, "alice@example.com", "wrong-password")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	_, err = auth.Login(ctx, "nobody@example.com", "password123")
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
}

func TestSetPassword(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := service.NewAuthService(db, "test-secret")
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "alice")

	err := auth.SetPassword(ctx, user.ID, "wrong-password", "newpassword")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	require.NoError(t, auth.SetPassword(ctx, user.ID, "password123", "newpassword"))

	_, err = auth.Login(ctx, "alice@example.com", "password123")
	assert.Error(t, err)

	_, err = auth.Login(ctx, "alice@example.com", "newpassword")
	assert.NoError(t, err)
}

func TestRegisterPropagatesLookupFailure(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	auth := service.NewAuthService(db, "test-secret")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = auth.Register(context.Background(), types.RegisterRequest{
		Email:     "late@example.com",
		Username:  "late",
		FirstName: "Late",
		LastName:  "Arrival",
		Password:  "password123",
	})
	require.Error(t, err)
	assert.False(t, apperr.IsKind(err, apperr.KindConflict))
}
