package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/apperr"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// RecipeService handles recipe reads and the create/update/delete pipeline.
type RecipeService struct {
	db        *gorm.DB
	annotator *Annotator
	images    *ImageService
}

func NewRecipeService(db *gorm.DB, images *ImageService) *RecipeService {
	return &RecipeService{
		db:        db,
		annotator: NewAnnotator(db),
		images:    images,
	}
}

// RecipeFilter narrows recipe listings. FavoritedOnly and InCartOnly are
// viewer-relative and yield nothing for anonymous viewers.
type RecipeFilter struct {
	AuthorID      *uuid.UUID
	TagSlugs      []string
	FavoritedOnly bool
	InCartOnly    bool
	Limit         int
	Offset        int
}

// List returns recipes newest first, hydrated and annotated for the viewer.
func (s *RecipeService) List(ctx context.Context, viewerID *uuid.UUID, filter RecipeFilter) ([]types.RecipeView, error) {
	if (filter.FavoritedOnly || filter.InCartOnly) && viewerID == nil {
		return []types.RecipeView{}, nil
	}

	query := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC")

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}
	if filter.FavoritedOnly {
		query = query.
			Joins("JOIN favorite_set_recipes ON favorite_set_recipes.recipe_id = recipes.id").
			Joins("JOIN favorite_sets ON favorite_sets.id = favorite_set_recipes.favorite_set_id").
			Where("favorite_sets.user_id = ?", *viewerID)
	}
	if filter.InCartOnly {
		query = query.
			Joins("JOIN shopping_cart_recipes ON shopping_cart_recipes.recipe_id = recipes.id").
			Joins("JOIN shopping_carts ON shopping_carts.id = shopping_cart_recipes.shopping_cart_id").
			Where("shopping_carts.user_id = ?", *viewerID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	return s.buildRecipeViews(ctx, viewerID, recipes)
}

// Get returns one recipe annotated for the viewer.
func (s *RecipeService) Get(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*types.RecipeView, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, "recipes.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe not found")
		}
		return nil, err
	}

	views, err := s.buildRecipeViews(ctx, viewerID, []models.Recipe{recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Create validates and persists a new recipe attributed to authorID. The
// recipe row, its tag associations and its ingredient rows are written in
// one transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, in types.RecipeCreateInput) (*types.RecipeView, error) {
	if err := validateIngredientEntries(in.Ingredients); err != nil {
		return nil, err
	}
	if in.CookingTime < 1 {
		return nil, apperr.Validation("cooking time must be at least 1 minute")
	}

	if err := s.checkIngredientsExist(ctx, in.Ingredients); err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		ImageURL:    imageURL,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&recipe).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}
		return createIngredientRows(tx, recipe.ID, in.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, &authorID, recipe.ID)
}

// Update applies a partial update. A supplied ingredients payload replaces
// the stored set wholesale inside the transaction, never merges; the same
// holds for tags. Omitted fields are untouched.
func (s *RecipeService) Update(ctx context.Context, viewerID uuid.UUID, id uuid.UUID, in types.RecipeUpdateInput) (*types.RecipeView, error) {
	recipe, err := s.loadOwned(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}

	if in.Ingredients != nil {
		if err := validateIngredientEntries(*in.Ingredients); err != nil {
			return nil, err
		}
		if err := s.checkIngredientsExist(ctx, *in.Ingredients); err != nil {
			return nil, err
		}
	}
	if in.CookingTime != nil && *in.CookingTime < 1 {
		return nil, apperr.Validation("cooking time must be at least 1 minute")
	}

	var tags []models.Tag
	if in.Tags != nil {
		tags, err = s.resolveTags(ctx, *in.Tags)
		if err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Text != nil {
		updates["text"] = *in.Text
	}
	if in.CookingTime != nil {
		updates["cooking_time"] = *in.CookingTime
	}
	if in.Image != nil {
		imageURL, err := s.storeImage(ctx, *in.Image)
		if err != nil {
			return nil, err
		}
		updates["image_url"] = imageURL
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(recipe).Updates(updates).Error; err != nil {
				return err
			}
		}
		if in.Tags != nil {
			if len(tags) == 0 {
				if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}
		if in.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := createIngredientRows(tx, recipe.ID, *in.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, &viewerID, id)
}

// Delete removes a recipe together with its ingredient rows, tag
// associations and every favorite/cart membership that referenced it. The
// favorite sets and carts themselves survive.
func (s *RecipeService) Delete(ctx context.Context, viewerID uuid.UUID, id uuid.UUID) error {
	recipe, err := s.loadOwned(ctx, viewerID, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM favorite_set_recipes WHERE recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM shopping_cart_recipes WHERE recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

// loadOwned loads a recipe and checks the viewer may modify it (author or
// admin).
func (s *RecipeService) loadOwned(ctx context.Context, viewerID uuid.UUID, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipe not found")
		}
		return nil, err
	}

	if recipe.AuthorID != viewerID {
		var viewer models.User
		if err := s.db.WithContext(ctx).First(&viewer, "id = ?", viewerID).Error; err != nil {
			return nil, apperr.Authorization("you do not have permission to modify this recipe")
		}
		if !viewer.IsAdmin() {
			return nil, apperr.Authorization("you do not have permission to modify this recipe")
		}
	}

	return &recipe, nil
}

// Validation order is part of the contract: empty list and amount bounds
// first, duplicates second; callers check cooking time after.
func validateIngredientEntries(entries []types.RecipeIngredientInput) error {
	if len(entries) == 0 {
		return apperr.Validation("ingredients list must not be empty")
	}
	for _, entry := range entries {
		if entry.Amount < 1 {
			return apperr.Validation("ingredient amount must be at least 1")
		}
	}

	seen := make(map[uuid.UUID]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.ID]; dup {
			return apperr.Validation("recipe lists the same ingredient more than once")
		}
		seen[entry.ID] = struct{}{}
	}
	return nil
}

func (s *RecipeService) checkIngredientsExist(ctx context.Context, entries []types.RecipeIngredientInput) error {
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return apperr.NotFound("ingredient not found")
	}
	return nil
}

func (s *RecipeService) resolveTags(ctx context.Context, ids []uuid.UUID) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var tags []models.Tag
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, apperr.NotFound("tag not found")
	}
	return tags, nil
}

func (s *RecipeService) storeImage(ctx context.Context, payload string) (string, error) {
	if s.images == nil || payload == "" {
		return payload, nil
	}
	return s.images.StoreRecipeImage(ctx, payload)
}

func createIngredientRows(tx *gorm.DB, recipeID uuid.UUID, entries []types.RecipeIngredientInput) error {
	rows := make([]models.RecipeIngredient, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: entry.ID,
			Amount:       entry.Amount,
		})
	}
	return tx.Create(&rows).Error
}

func (s *RecipeService) buildRecipeViews(ctx context.Context, viewerID *uuid.UUID, recipes []models.Recipe) ([]types.RecipeView, error) {
	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited, err := s.annotator.FavoritedSet(ctx, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.annotator.InCartSet(ctx, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.annotator.SubscribedSet(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]types.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, types.RecipeView{
			ID:               r.ID,
			Author:           buildUserView(r.Author, subscribed[r.AuthorID]),
			Name:             r.Name,
			ImageURL:         r.ImageURL,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			CreatedAt:        r.CreatedAt,
			Tags:             buildTagViews(r.Tags),
			Ingredients:      buildIngredientViews(r.Ingredients),
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
		})
	}
	return views, nil
}
