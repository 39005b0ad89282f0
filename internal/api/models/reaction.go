package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reaction holds at most one row per (comment, user) and per (comment, anon_id);
// repeated reactions from the same identity overwrite Type.
type Reaction struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Type      string    `gorm:"not null" json:"type"`
	CommentID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_reaction_user;uniqueIndex:idx_reaction_anon" json:"comment_id"`
	UserID    *string   `gorm:"type:uuid;uniqueIndex:idx_reaction_user" json:"user_id,omitempty"`
	AnonID    *string   `gorm:"uniqueIndex:idx_reaction_anon" json:"anon_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Reaction) TableName() string {
	return "comment_reactions"
}
