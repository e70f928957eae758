package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/internal/apperr"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// CollectionService manages favorite-set and shopping-cart membership.
// Adds and removes are idempotent: re-adding a member or removing an
// absent one changes nothing and does not fail.
type CollectionService struct {
	db *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

// AddFavorite puts a recipe into the user's favorite set.
func (s *CollectionService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*types.RecipeSummaryView, error) {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	var set models.FavoriteSet
	err = s.db.WithContext(ctx).
		Where(models.FavoriteSet{UserID: userID}).
		FirstOrCreate(&set).Error
	if err != nil {
		return nil, err
	}

	if err := s.appendMember(ctx, &set, recipe); err != nil {
		return nil, err
	}

	view := buildRecipeSummary(*recipe)
	return &view, nil
}

// RemoveFavorite takes a recipe out of the user's favorite set.
func (s *CollectionService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Exec(
		`DELETE FROM favorite_set_recipes
		 WHERE recipe_id = ?
		   AND favorite_set_id IN (SELECT id FROM favorite_sets WHERE user_id = ?)`,
		recipeID, userID,
	).Error
}

// AddToCart puts a recipe into the user's shopping cart.
func (s *CollectionService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*types.RecipeSummaryView, error) {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	var cart models.ShoppingCart
	err = s.db.WithContext(ctx).
		Where(models.ShoppingCart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}

	if err := s.appendMember(ctx, &cart, recipe); err != nil {
		return nil, err
	}

	view := buildRecipeSummary(*recipe)
	return &view, nil
}

// RemoveFromCart takes a recipe out of the user's shopping cart.
func (s *CollectionService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Exec(
		`DELETE FROM shopping_cart_recipes
		 WHERE recipe_id = ?
		   AND shopping_cart_id IN (SELECT id FROM shopping_carts WHERE user_id = ?)`,
		recipeID, userID,
	).Error
}

func (s *CollectionService) loadRecipe(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe not found")
		}
		return nil, err
	}
	return &recipe, nil
}

// appendMember inserts the join row, silently skipping when it already
// exists.
func (s *CollectionService) appendMember(ctx context.Context, set interface{}, recipe *models.Recipe) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Model(set).
		Association("Recipes").
		Append(recipe)
}
