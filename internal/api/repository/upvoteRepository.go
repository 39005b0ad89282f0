package repository

import (
	"context"

	"epicode/internal/api/models"

	"gorm.io/gorm"
)

type UpvoteRepository interface {
	Create(ctx context.Context, upvote *models.Upvote) error
	Delete(ctx context.Context, id string) error
	FindByPostAndUser(ctx context.Context, postID, userID string) (*models.Upvote, error)
	FindByPostAndAnon(ctx context.Context, postID, anonID string) (*models.Upvote, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error)
}

type upvoteRepository struct {
	db *gorm.DB
}

func NewUpvoteRepository(db *gorm.DB) UpvoteRepository {
	return &upvoteRepository{db: db}
}

func (r *upvoteRepository) Create(ctx context.Context, upvote *models.Upvote) error {
	return r.db.WithContext(ctx).Create(upvote).Error
}

func (r *upvoteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Upvote{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *upvoteRepository) FindByPostAndUser(ctx context.Context, postID, userID string) (*models.Upvote, error) {
	var upvote models.Upvote
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&upvote).Error
	if err != nil {
		return nil, err
	}
	return &upvote, nil
}

func (r *upvoteRepository) FindByPostAndAnon(ctx context.Context, postID, anonID string) (*models.Upvote, error) {
	var upvote models.Upvote
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND anon_id = ?", postID, anonID).
		First(&upvote).Error
	if err != nil {
		return nil, err
	}
	return &upvote, nil
}

func (r *upvoteRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Upvote{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *upvoteRepository) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Upvote{}).
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
