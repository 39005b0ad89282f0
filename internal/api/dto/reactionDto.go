package dto

import (
	"time"

	"epicode/internal/api/models"
)

type ReactionRequest struct {
	Type   string `json:"type" binding:"required,min=1,max=50"`
	AnonID string `json:"anon_id"`
}

type ReactionView struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CommentID string    `json:"comment_id"`
	UserID    *string   `json:"user_id,omitempty"`
	AnonID    *string   `json:"anon_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModelToReactionView(reaction *models.Reaction) ReactionView {
	return ReactionView{
		ID:        reaction.ID,
		Type:      reaction.Type,
		CommentID: reaction.CommentID,
		UserID:    reaction.UserID,
		AnonID:    reaction.AnonID,
		CreatedAt: reaction.CreatedAt,
		UpdatedAt: reaction.UpdatedAt,
	}
}
