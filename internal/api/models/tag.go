package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag names are stored trimmed and lowercased; uniqueness is enforced on the
// normalized form. Tags are created lazily and never garbage-collected.
type Tag struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

func (Tag) TableName() string {
	return "tags"
}
