package repository

import (
	"context"

	"epicode/internal/api/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Tag, error)
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	FindByNames(ctx context.Context, names []string) ([]models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	FindByPostID(ctx context.Context, postID string) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Tag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tagRepository) FindByID(ctx context.Context, id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(names) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&tags).Error
	return tags, err
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) FindByPostID(ctx context.Context, postID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Find(&tags).Error
	return tags, err
}
