package repository

import (
	"context"

	"epicode/internal/api/models"

	"gorm.io/gorm"
)

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}
