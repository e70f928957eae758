package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscribe is a follow edge from a user to an author. The pair is unique
// and self-follows are rejected at both the service and storage layer.
type Subscribe struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscribe_pair" json:"user_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscribe_pair;check:chk_no_self_follow,user_id <> author_id" json:"author_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Subscribe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
