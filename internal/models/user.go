package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Admins may manage catalog reference data (tags, ingredients).
const (
	RoleGuest = "guest"
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName    string         `gorm:"size:150" json:"first_name"`
	LastName     string         `gorm:"size:150" json:"last_name"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"size:50;not null;default:'user'" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
