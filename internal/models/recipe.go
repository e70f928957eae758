package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`
	AuthorID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      User               `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string             `gorm:"size:200;not null" json:"name"`
	ImageURL    string             `gorm:"size:255" json:"image_url"`
	Text        string             `gorm:"type:text" json:"text"`
	CookingTime int                `gorm:"not null;check:cooking_time >= 1" json:"cooking_time"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient ties one ingredient with an amount to a recipe. A recipe
// lists each ingredient at most once.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"-"`
	RecipeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient" json:"id"`
	Ingredient   Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Amount       int        `gorm:"not null;check:amount >= 1" json:"amount"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
