package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values. New accounts default to "user" (reader); "author" can publish
// posts and moderate comments under them; "admin" can moderate everything.
const (
	RoleUser   = "user"
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"` // never serialized
	Role      string    `gorm:"default:'user';not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets a UUID primary key when none was supplied.
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
