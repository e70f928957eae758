package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteSet and ShoppingCart are per-user singleton collections of recipe
// references. Both are created in the same transaction as the user itself,
// so every user always has exactly one of each. Membership rows reference
// recipes without owning them.

type FavoriteSet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Recipes   []Recipe  `gorm:"many2many:favorite_set_recipes" json:"recipes"`
}

func (f *FavoriteSet) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type ShoppingCart struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Recipes   []Recipe  `gorm:"many2many:shopping_cart_recipes" json:"recipes"`
}

func (s *ShoppingCart) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
