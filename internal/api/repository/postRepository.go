package repository

import (
	"context"
	"fmt"
	"strings"

	"epicode/internal/api/models"

	"gorm.io/gorm"
)

// PostFilter narrows the post listing. PostIDs nil means no tag filter was
// applied; an empty non-nil slice means the tag filter matched nothing.
type PostFilter struct {
	Query     string
	PostIDs   []string
	Published *bool
	Page      int
	Limit     int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	DeleteCascade(ctx context.Context, postID string) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetDetail(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error)
	ReplaceTags(ctx context.Context, postID string, tagIDs []string) error
	PostIDsByTagIDs(ctx context.Context, tagIDs []string) ([]string, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// DeleteCascade removes the post and all dependent rows in one transaction so
// a partial deletion is never observable.
func (r *postRepository) DeleteCascade(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN (?)",
			tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", postID),
		).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Upvote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", postID).Error
	})
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetDetail loads the post with author, tags and its full ascending comment
// list (each with its user) for the detail view.
func (r *postRepository) GetDetail(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.User").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{})

	if filter.Query != "" {
		needle := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", needle, needle)
	}
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.PostIDs != nil {
		query = query.Where("id IN ?", filter.PostIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Preload("Author").
		Preload("Tags").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// ReplaceTags clears the post's tag associations and recreates them from
// tagIDs inside one transaction.
func (r *postRepository) ReplaceTags(ctx context.Context, postID string, tagIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		joins := make([]models.PostTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			joins = append(joins, models.PostTag{PostID: postID, TagID: tagID})
		}
		return tx.Create(&joins).Error
	})
}

func (r *postRepository) PostIDsByTagIDs(ctx context.Context, tagIDs []string) ([]string, error) {
	var ids []string
	if len(tagIDs) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.PostTag{}).
		Distinct("post_id").
		Where("tag_id IN ?", tagIDs).
		Pluck("post_id", &ids).Error
	return ids, err
}
