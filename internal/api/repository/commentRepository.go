package repository

import (
	"context"

	"epicode/internal/api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	// GetThreadByPost returns root comments in ascending creation order, each
	// with two levels of replies and the reactions attached at every level.
	GetThreadByPost(ctx context.Context, postID string) ([]models.Comment, error)
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Comment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetThreadByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	byCreation := func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.created_at ASC")
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Reactions").
		Preload("Replies", byCreation).
		Preload("Replies.User").
		Preload("Replies.Reactions").
		Preload("Replies.Replies", byCreation).
		Preload("Replies.Replies.User").
		Preload("Replies.Replies.Reactions").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}
