package testhelpers

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

// CreateUser registers a user through the auth service so the favorite set
// and shopping cart exist too.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	auth := service.NewAuthService(db, "test-secret")
	user, err := auth.Register(context.Background(), types.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// CreateAdmin creates a user and promotes it to the admin role.
func CreateAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := CreateUser(t, db, username)
	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote user %s: %v", username, err)
	}
	user.Role = models.RoleAdmin
	return user
}

// CreateTag inserts a tag directly.
func CreateTag(t *testing.T, db *gorm.DB, name, color, slug string) *models.Tag {
	t.Helper()

	tag := models.Tag{Name: name, Color: color, Slug: slug}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to create tag %s: %v", name, err)
	}
	return &tag
}

// CreateIngredient inserts an ingredient directly.
func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ing := models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(&ing).Error; err != nil {
		t.Fatalf("failed to create ingredient %s: %v", name, err)
	}
	return &ing
}

// CreateRecipe creates a recipe through the recipe service with the given
// ingredient amounts.
func CreateRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID, name string, amounts map[uuid.UUID]int) *types.RecipeView {
	t.Helper()

	entries := make([]types.RecipeIngredientInput, 0, len(amounts))
	for id, amount := range amounts {
		entries = append(entries, types.RecipeIngredientInput{ID: id, Amount: amount})
	}

	recipes := service.NewRecipeService(db, nil)
	view, err := recipes.Create(context.Background(), authorID, types.RecipeCreateInput{
		Name:        name,
		Text:        fmt.Sprintf("How to make %s", name),
		CookingTime: 30,
		Ingredients: entries,
	})
	if err != nil {
		t.Fatalf("failed to create recipe %s: %v", name, err)
	}
	return view
}
