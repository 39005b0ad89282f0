package service

import (
	"context"
	"errors"
	"strings"

	"epicode/internal/api/apperrors"
	"epicode/internal/api/dto"
	"epicode/internal/api/models"
	"epicode/internal/api/repository"

	"gorm.io/gorm"
)

type TagService interface {
	// Resolve maps raw tag names to persisted tags, creating missing ones.
	Resolve(ctx context.Context, names []string) ([]models.Tag, error)
	List(ctx context.Context) ([]dto.TagView, error)
	Create(ctx context.Context, name string) (*dto.TagView, error)
	Update(ctx context.Context, id, name string) (*dto.TagView, error)
	Delete(ctx context.Context, id string) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// NormalizeTagName folds a raw tag name to its canonical stored form.
func NormalizeTagName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Resolve normalizes and deduplicates names, then get-or-creates each tag.
// A concurrent create losing the uniqueness race is resolved by re-reading
// the winner's row.
func (s *tagService) Resolve(ctx context.Context, names []string) ([]models.Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]models.Tag, 0, len(names))

	for _, raw := range names {
		name := NormalizeTagName(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.getOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *tagService) getOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := s.tagRepo.FindByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &models.Tag{Name: name}
	err = s.tagRepo.Create(ctx, created)
	if err == nil {
		return created, nil
	}
	if repository.IsDuplicateKey(err) {
		// lost the race: another request created it first
		return s.tagRepo.FindByName(ctx, name)
	}
	return nil, err
}

func (s *tagService) List(ctx context.Context) ([]dto.TagView, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]dto.TagView, 0, len(tags))
	for i := range tags {
		views = append(views, dto.FromModelToTagView(&tags[i]))
	}
	return views, nil
}

func (s *tagService) Create(ctx context.Context, name string) (*dto.TagView, error) {
	normalized := NormalizeTagName(name)
	if normalized == "" {
		return nil, apperrors.Validationf("tag name is required")
	}

	if _, err := s.tagRepo.FindByName(ctx, normalized); err == nil {
		return nil, apperrors.Conflictf("tag already exists")
	}

	tag := &models.Tag{Name: normalized}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperrors.Conflictf("tag already exists")
		}
		return nil, err
	}

	view := dto.FromModelToTagView(tag)
	return &view, nil
}

func (s *tagService) Update(ctx context.Context, id, name string) (*dto.TagView, error) {
	normalized := NormalizeTagName(name)
	if normalized == "" {
		return nil, apperrors.Validationf("tag name is required")
	}

	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("tag %s", id)
		}
		return nil, err
	}

	tag.Name = normalized
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperrors.Conflictf("tag already exists")
		}
		return nil, err
	}

	view := dto.FromModelToTagView(tag)
	return &view, nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("tag %s", id)
		}
		return err
	}
	return nil
}
