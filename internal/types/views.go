package types

import (
	"time"

	"github.com/google/uuid"
)

// Read views. Writes return the fully hydrated read shape, never an echo of
// the input payload.

type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type TagView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

type IngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// RecipeIngredientView is an ingredient with the amount used by a recipe.
type RecipeIngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeView struct {
	ID               uuid.UUID              `json:"id"`
	Author           UserView               `json:"author"`
	Name             string                 `json:"name"`
	ImageURL         string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	CreatedAt        time.Time              `json:"created_at"`
	Tags             []TagView              `json:"tags"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
}

// RecipeSummaryView is the short recipe shape used for membership responses
// and subscription listings.
type RecipeSummaryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionView is an author the viewer follows. IsSubscribed is true by
// construction; RecipesCount counts the author's recipes; Recipes may be
// capped by the caller-supplied limit.
type SubscriptionView struct {
	ID           uuid.UUID           `json:"id"`
	Email        string              `json:"email"`
	Username     string              `json:"username"`
	FirstName    string              `json:"first_name"`
	LastName     string              `json:"last_name"`
	IsSubscribed bool                `json:"is_subscribed"`
	RecipesCount int64               `json:"recipes_count"`
	Recipes      []RecipeSummaryView `json:"recipes"`
}
