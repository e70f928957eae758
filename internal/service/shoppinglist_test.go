package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

func TestShoppingListSumsAcrossRecipes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	collections := service.NewCollectionService(db)
	shopping := service.NewShoppingListService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	milk := testhelpers.CreateIngredient(t, db, "milk", "ml")

	bread := testhelpers.CreateRecipe(t, db, alice.ID, "Bread", map[uuid.UUID]int{flour.ID: 200})
	pancakes := testhelpers.CreateRecipe(t, db, alice.ID, "Pancakes", map[uuid.UUID]int{
		flour.ID: 100,
		milk.ID:  300,
	})

	_, err := collections.AddToCart(ctx, alice.ID, bread.ID)
	require.NoError(t, err)
	_, err = collections.AddToCart(ctx, alice.ID, pancakes.ID)
	require.NoError(t, err)

	items, err := shopping.Items(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "flour", items[0].Name)
	assert.Equal(t, "g", items[0].Unit)
	assert.Equal(t, 300, items[0].Total)
	assert.Equal(t, "milk", items[1].Name)
	assert.Equal(t, 300, items[1].Total)

	lines, err := shopping.Lines(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "1. flour - 300 g.", lines[0])
	assert.Equal(t, "2. milk - 300 ml.", lines[1])
}

func TestShoppingListKeepsUnitsSeparate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	collections := service.NewCollectionService(db)
	shopping := service.NewShoppingListService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	sugarG := testhelpers.CreateIngredient(t, db, "sugar", "g")
	sugarTbsp := testhelpers.CreateIngredient(t, db, "sugar", "tbsp")

	cake := testhelpers.CreateRecipe(t, db, alice.ID, "Cake", map[uuid.UUID]int{
		sugarG.ID:    150,
		sugarTbsp.ID: 2,
	})

	_, err := collections.AddToCart(ctx, alice.ID, cake.ID)
	require.NoError(t, err)

	items, err := shopping.Items(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].Unit, items[1].Unit)
}

func TestShoppingListEmptyCart(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	shopping := service.NewShoppingListService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")

	items, err := shopping.Items(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	lines, err := shopping.Lines(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shopping cart is empty."}, lines)
}

func TestShoppingListScopedToUser(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	collections := service.NewCollectionService(db)
	shopping := service.NewShoppingListService(db)
	ctx := context.Background()

	alice := testhelpers.CreateUser(t, db, "alice")
	bob := testhelpers.CreateUser(t, db, "bob")
	flour := testhelpers.CreateIngredient(t, db, "flour", "g")
	bread := testhelpers.CreateRecipe(t, db, alice.ID, "Bread", map[uuid.UUID]int{flour.ID: 200})

	_, err := collections.AddToCart(ctx, alice.ID, bread.ID)
	require.NoError(t, err)

	items, err := shopping.Items(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
