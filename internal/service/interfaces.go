package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// IAuthService defines the interface for authentication and user account
// operations
type IAuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	SetPassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// ICatalogService defines the interface for tag and ingredient reference
// data
type ICatalogService interface {
	ListTags(ctx context.Context) ([]types.TagView, error)
	GetTag(ctx context.Context, id uuid.UUID) (*types.TagView, error)
	CreateTag(ctx context.Context, in types.TagInput) (*types.TagView, error)
	UpdateTag(ctx context.Context, id uuid.UUID, in types.TagInput) (*types.TagView, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
	ListIngredients(ctx context.Context, namePrefix string) ([]types.IngredientView, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*types.IngredientView, error)
	CreateIngredient(ctx context.Context, in types.IngredientInput) (*types.IngredientView, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, in types.IngredientInput) (*types.IngredientView, error)
	DeleteIngredient(ctx context.Context, id uuid.UUID) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	List(ctx context.Context, viewerID *uuid.UUID, filter RecipeFilter) ([]types.RecipeView, error)
	Get(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*types.RecipeView, error)
	Create(ctx context.Context, authorID uuid.UUID, in types.RecipeCreateInput) (*types.RecipeView, error)
	Update(ctx context.Context, viewerID uuid.UUID, id uuid.UUID, in types.RecipeUpdateInput) (*types.RecipeView, error)
	Delete(ctx context.Context, viewerID uuid.UUID, id uuid.UUID) error
}

// ISocialService defines the interface for the follower graph
type ISocialService interface {
	Subscribe(ctx context.Context, followerID, authorID uuid.UUID, recipesLimit *int) (*types.SubscriptionView, error)
	Unsubscribe(ctx context.Context, followerID, authorID uuid.UUID) error
	ListSubscriptions(ctx context.Context, followerID uuid.UUID, recipesLimit *int) ([]types.SubscriptionView, error)
	UserViews(ctx context.Context, viewerID *uuid.UUID, users []models.User) ([]types.UserView, error)
}

// ICollectionService defines the interface for favorite and shopping-cart
// membership
type ICollectionService interface {
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*types.RecipeSummaryView, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*types.RecipeSummaryView, error)
	RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error
}

// IShoppingListService defines the interface for cart aggregation
type IShoppingListService interface {
	Items(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error)
	Lines(ctx context.Context, userID uuid.UUID) ([]string, error)
}
