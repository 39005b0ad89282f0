package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment authorship is either a registered user (UserID set) or an anonymous
// name/email pair, never both. The invariant is enforced by the service layer
// through the Authorship value type, not by a storage constraint.
type Comment struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	Content  string  `gorm:"not null;type:text" json:"content"`
	PostID   string  `gorm:"type:uuid;not null;index" json:"post_id"`
	ParentID *string `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	UserID   *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Parent    *Comment   `json:"-" gorm:"foreignKey:ParentID"`
	Replies   []Comment  `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
	Reactions []Reaction `json:"reactions,omitempty" gorm:"foreignKey:CommentID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (Comment) TableName() string {
	return "comments"
}

// IsReply reports whether the comment is threaded under a parent comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
