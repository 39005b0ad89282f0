package repository

import (
	"context"

	"epicode/internal/api/models"

	"gorm.io/gorm"
)

type ReactionRepository interface {
	Create(ctx context.Context, reaction *models.Reaction) error
	Update(ctx context.Context, reaction *models.Reaction) error
	FindByCommentAndUser(ctx context.Context, commentID, userID string) (*models.Reaction, error)
	FindByCommentAndAnon(ctx context.Context, commentID, anonID string) (*models.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

func (r *reactionRepository) Update(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Save(reaction).Error
}

func (r *reactionRepository) FindByCommentAndUser(ctx context.Context, commentID, userID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) FindByCommentAndAnon(ctx context.Context, commentID, anonID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND anon_id = ?", commentID, anonID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}
