package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is admin-managed reference data attached to recipes.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"size:7;uniqueIndex;not null" json:"color"`
	Slug      string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Ingredient is admin-managed reference data. Names are deliberately not
// unique: the same name may exist with different measurement units.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Name            string    `gorm:"size:200;index;not null" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
