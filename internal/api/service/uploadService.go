package service

import (
	"context"
	"fmt"

	"epicode/internal/api/dto"
	"epicode/internal/api/models"
	"epicode/internal/api/repository"
	"epicode/internal/storage"
)

type UploadService interface {
	// UploadImage stores the buffer in object storage and records the URL,
	// optionally linked to a post.
	UploadImage(ctx context.Context, data []byte, contentType, filename string, postID *string) (*dto.UploadResponse, error)
}

type uploadService struct {
	uploader  storage.Uploader
	imageRepo repository.ImageRepository
}

func NewUploadService(uploader storage.Uploader, imageRepo repository.ImageRepository) UploadService {
	return &uploadService{
		uploader:  uploader,
		imageRepo: imageRepo,
	}
}

func (s *uploadService) UploadImage(ctx context.Context, data []byte, contentType, filename string, postID *string) (*dto.UploadResponse, error) {
	url, err := s.uploader.Upload(ctx, data, contentType, filename)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	image := &models.Image{URL: url, PostID: postID}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}

	return &dto.UploadResponse{ID: image.ID, URL: image.URL, PostID: image.PostID}, nil
}
