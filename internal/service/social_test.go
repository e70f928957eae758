package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/apperr"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

func TestSubscribe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	view, err := social.Subscribe(ctx, alice.ID, bob.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, view.ID)
	assert.True(t, view.IsSubscribed)
	assert.EqualValues(t, 0, view.RecipesCount)

	_, err = social.Subscribe(ctx, alice.ID, bob.ID, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSubscribeToSelf(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")

	_, err := social.Subscribe(ctx, alice.ID, alice.ID, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")

	_, err := social.Subscribe(ctx, alice.ID, uuid.New(), nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUnsubscribeIdempotent(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")

	_, err := social.Subscribe(ctx, alice.ID, bob.ID, nil)
	require.NoError(t, err)

	require.NoError(t, social.Unsubscribe(ctx, alice.ID, bob.ID))
	// Unsubscribing again is a no-op.
	require.NoError(t, social.Unsubscribe(ctx, alice.ID, bob.ID))

	var edges int64
	require.NoError(t, db.Model(&models.Subscribe{}).Where("user_id = ?", alice.ID).Count(&edges).Error)
	assert.Zero(t, edges)
}

func TestListSubscriptionsWithRecipePreview(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")

	for _, name := range []string{"Bread", "Toast", "Buns"} {
		testhelpers.CreateRecipe(t, db, bob.ID, name, map[uuid.UUID]int{flour.ID: 100})
	}

	_, err := social.Subscribe(ctx, alice.ID, bob.ID, nil)
	require.NoError(t, err)

	views, err := social.ListSubscriptions(ctx, alice.ID, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.EqualValues(t, 3, views[0].RecipesCount)
	assert.Len(t, views[0].Recipes, 3)

	limit := 1
	capped, err := social.ListSubscriptions(ctx, alice.ID, &limit)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.EqualValues(t, 3, capped[0].RecipesCount)
	assert.Len(t, capped[0].Recipes, 1)
}

func TestSubscribedFlagInUserViews(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	carol := testhelpers.CreateUser(t, db, "carol")

	_, err := social.Subscribe(ctx, alice.ID, bob.ID, nil)
	require.NoError(t, err)

	views, err := social.UserViews(ctx, &alice.ID, []models.User{*bob, *carol})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].IsSubscribed)
	assert.False(t, views[1].IsSubscribed)

	// Anonymous viewers never see a true flag.
	anon, err := social.UserViews(ctx, nil, []models.User{*bob})
	require.NoError(t, err)
	assert.False(t, anon[0].IsSubscribed)
}

func TestSubscribePropagatesLookupFailure(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	social := service.NewSocialService(db)

	follower := testhelpers.CreateUser(t, db, "follower")
	author := testhelpers.CreateUser(t, db, "author")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = social.Subscribe(context.Background(), follower.ID, author.ID, nil)
	require.Error(t, err)
	assert.False(t, apperr.IsKind(err, apperr.KindConflict))
	assert.False(t, apperr.IsKind(err, apperr.KindNotFound))
}
