package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingListService aggregates the ingredients of every recipe in a
// user's cart into one summed list.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// ShoppingListItem is one summed ingredient line. Ingredients sharing a
// name but measured in different units stay separate rows.
type ShoppingListItem struct {
	Name  string
	Unit  string
	Total int
}

// Items returns the summed ingredient list for the user's cart, ordered by
// ingredient name. The summing happens in SQL: one query regardless of
// cart size.
func (s *ShoppingListService) Items(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := s.db.WithContext(ctx).Raw(
		`SELECT ingredients.name AS name,
		        ingredients.measurement_unit AS unit,
		        SUM(recipe_ingredients.amount) AS total
		 FROM recipe_ingredients
		 JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id
		 JOIN shopping_cart_recipes ON shopping_cart_recipes.recipe_id = recipe_ingredients.recipe_id
		 JOIN shopping_carts ON shopping_carts.id = shopping_cart_recipes.shopping_cart_id
		 WHERE shopping_carts.user_id = ?
		 GROUP BY ingredients.name, ingredients.measurement_unit
		 ORDER BY ingredients.name`,
		userID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Lines renders the list as numbered text lines ready for a document
// writer. An empty cart yields a single explanatory line.
func (s *ShoppingListService) Lines(ctx context.Context, userID uuid.UUID) ([]string, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return []string{"Shopping cart is empty."}, nil
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s - %d %s.", i+1, item.Name, item.Total, item.Unit))
	}
	return lines, nil
}
