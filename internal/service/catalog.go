package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/apperr"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// CatalogService manages the tag and ingredient reference data. Reads are
// open to everyone; the admin-only gate on writes sits in the routing layer.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *CatalogService) ListTags(ctx context.Context) ([]types.TagView, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return buildTagViews(tags), nil
}

func (s *CatalogService) GetTag(ctx context.Context, id uuid.UUID) (*types.TagView, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tag not found")
		}
		return nil, err
	}
	view := buildTagViews([]models.Tag{tag})[0]
	return &view, nil
}

func (s *CatalogService) CreateTag(ctx context.Context, in types.TagInput) (*types.TagView, error) {
	var existing models.Tag
	err := s.db.WithContext(ctx).
		Where("name = ? OR color = ? OR slug = ?", in.Name, in.Color, in.Slug).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("tag with this name, color or slug already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := models.Tag{Name: in.Name, Color: in.Color, Slug: in.Slug}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	view := buildTagViews([]models.Tag{tag})[0]
	return &view, nil
}

func (s *CatalogService) UpdateTag(ctx context.Context, id uuid.UUID, in types.TagInput) (*types.TagView, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tag not found")
		}
		return nil, err
	}

	var existing models.Tag
	err := s.db.WithContext(ctx).
		Where("id <> ? AND (name = ? OR color = ? OR slug = ?)", id, in.Name, in.Color, in.Slug).
		First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("tag with this name, color or slug already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag.Name = in.Name
	tag.Color = in.Color
	tag.Slug = in.Slug
	if err := s.db.WithContext(ctx).Save(&tag).Error; err != nil {
		return nil, err
	}
	view := buildTagViews([]models.Tag{tag})[0]
	return &view, nil
}

func (s *CatalogService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("tag not found")
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

// ListIngredients returns ingredients, optionally filtered by a
// case-insensitive name prefix.
func (s *CatalogService) ListIngredients(ctx context.Context, namePrefix string) ([]types.IngredientView, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{}).Order("name")
	if namePrefix != "" {
		// % and _ in the prefix are literal characters, not LIKE wildcards.
		escaped := likeEscaper.Replace(strings.ToLower(namePrefix))
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, escaped+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}

	views := make([]types.IngredientView, 0, len(ingredients))
	for _, ing := range ingredients {
		views = append(views, types.IngredientView{ID: ing.ID, Name: ing.Name, MeasurementUnit: ing.MeasurementUnit})
	}
	return views, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*types.IngredientView, error) {
	var ing models.Ingredient
	if err := s.db.WithContext(ctx).First(&ing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ingredient not found")
		}
		return nil, err
	}
	return &types.IngredientView{ID: ing.ID, Name: ing.Name, MeasurementUnit: ing.MeasurementUnit}, nil
}

func (s *CatalogService) CreateIngredient(ctx context.Context, in types.IngredientInput) (*types.IngredientView, error) {
	ing := models.Ingredient{Name: in.Name, MeasurementUnit: in.MeasurementUnit}
	if err := s.db.WithContext(ctx).Create(&ing).Error; err != nil {
		return nil, err
	}
	return &types.IngredientView{ID: ing.ID, Name: ing.Name, MeasurementUnit: ing.MeasurementUnit}, nil
}

func (s *CatalogService) UpdateIngredient(ctx context.Context, id uuid.UUID, in types.IngredientInput) (*types.IngredientView, error) {
	var ing models.Ingredient
	if err := s.db.WithContext(ctx).First(&ing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ingredient not found")
		}
		return nil, err
	}

	ing.Name = in.Name
	ing.MeasurementUnit = in.MeasurementUnit
	if err := s.db.WithContext(ctx).Save(&ing).Error; err != nil {
		return nil, err
	}
	return &types.IngredientView{ID: ing.ID, Name: ing.Name, MeasurementUnit: ing.MeasurementUnit}, nil
}

// DeleteIngredient refuses to remove an ingredient still referenced by
// recipes; deleting it would orphan their ingredient lists.
func (s *CatalogService) DeleteIngredient(ctx context.Context, id uuid.UUID) error {
	var ing models.Ingredient
	if err := s.db.WithContext(ctx).First(&ing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("ingredient not found")
		}
		return err
	}

	var inUse int64
	if err := s.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Where("ingredient_id = ?", id).
		Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return apperr.Conflict("ingredient is used by existing recipes")
	}

	return s.db.WithContext(ctx).Delete(&ing).Error
}
