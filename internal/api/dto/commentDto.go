package dto

import (
	"time"

	"epicode/internal/api/models"
)

// CreateCommentRequest serves both authorship modes: authenticated callers
// are attributed from their token, anonymous callers must supply name+email.
type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,min=1,max=5000"`
	ParentID *string `json:"parent_id"`
	Name     string  `json:"name"`
	Email    string  `json:"email" binding:"omitempty,email"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

type CreatedComment struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentAuthor struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type CommentView struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Author    *CommentAuthor `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Reactions []ReactionView `json:"reactions"`
	Replies   []CommentView  `json:"replies"`
}

// ResolveCommentAuthor returns the registered user identity, the anonymous
// name/email pair, or nil when neither is resolvable.
func ResolveCommentAuthor(comment *models.Comment) *CommentAuthor {
	if comment.User != nil {
		return &CommentAuthor{ID: comment.User.ID, Name: comment.User.Name, Email: comment.User.Email}
	}
	if comment.Name != nil {
		author := &CommentAuthor{Name: *comment.Name}
		if comment.Email != nil {
			author.Email = *comment.Email
		}
		return author
	}
	return nil
}

// FromModelToCommentView maps a comment and its preloaded reply tree.
func FromModelToCommentView(comment *models.Comment) CommentView {
	reactions := make([]ReactionView, 0, len(comment.Reactions))
	for i := range comment.Reactions {
		reactions = append(reactions, FromModelToReactionView(&comment.Reactions[i]))
	}

	replies := make([]CommentView, 0, len(comment.Replies))
	for i := range comment.Replies {
		replies = append(replies, FromModelToCommentView(&comment.Replies[i]))
	}

	return CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    ResolveCommentAuthor(comment),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Reactions: reactions,
		Replies:   replies,
	}
}
