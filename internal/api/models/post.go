package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	Excerpt   *string   `json:"excerpt,omitempty"`
	Image     *string   `json:"image,omitempty"` // object storage URL, stored verbatim
	Published bool      `gorm:"default:false;not null" json:"published"`
	ReadTime  int       `gorm:"not null;check:read_time >= 1" json:"read_time"`
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Author   User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:post_tags;"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	Upvotes  []Upvote  `json:"upvotes,omitempty" gorm:"foreignKey:PostID"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (Post) TableName() string {
	return "posts"
}
