package models

// explicit join model so the association can be cleared and rebuilt directly
type PostTag struct {
	PostID string `gorm:"primaryKey;type:uuid" json:"post_id"`
	TagID  string `gorm:"primaryKey;type:uuid" json:"tag_id"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
