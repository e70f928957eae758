package types

import "github.com/google/uuid"

// Write inputs. These are deliberately distinct from the read views in
// views.go: an operation picks its shape explicitly, it is never inferred
// from the HTTP method.

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type TagInput struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"required,max=7"`
	Slug  string `json:"slug" binding:"required,max=100"`
}

type IngredientInput struct {
	Name            string `json:"name" binding:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=200"`
}

// RecipeIngredientInput references a catalog ingredient with an amount.
type RecipeIngredientInput struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount"`
}

type RecipeCreateInput struct {
	Name        string                  `json:"name" binding:"required,max=200"`
	Image       string                  `json:"image"`
	Text        string                  `json:"text"`
	CookingTime int                     `json:"cooking_time"`
	Tags        []uuid.UUID             `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

// RecipeUpdateInput is partial: nil fields are left untouched. A supplied
// ingredients or tags slice replaces the stored set wholesale.
type RecipeUpdateInput struct {
	Name        *string                  `json:"name"`
	Image       *string                  `json:"image"`
	Text        *string                  `json:"text"`
	CookingTime *int                     `json:"cooking_time"`
	Tags        *[]uuid.UUID             `json:"tags"`
	Ingredients *[]RecipeIngredientInput `json:"ingredients"`
}
