package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Upvote existence is the vote state: one row per (post, user) or
// (post, anon_id), removed again when the vote is retracted.
type Upvote struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_upvote_user;uniqueIndex:idx_upvote_anon" json:"post_id"`
	UserID    *string   `gorm:"type:uuid;uniqueIndex:idx_upvote_user" json:"user_id,omitempty"`
	AnonID    *string   `gorm:"uniqueIndex:idx_upvote_anon" json:"anon_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *Upvote) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

func (Upvote) TableName() string {
	return "upvotes"
}
