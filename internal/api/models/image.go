package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image records an uploaded file's durable URL, optionally linked to a post.
type Image struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	URL       string    `gorm:"not null" json:"url"`
	PostID    *string   `gorm:"type:uuid;index" json:"post_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

func (Image) TableName() string {
	return "images"
}
