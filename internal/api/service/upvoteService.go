package service

import (
	"context"
	"errors"

	"epicode/internal/api/apperrors"
	"epicode/internal/api/dto"
	"epicode/internal/api/models"
	"epicode/internal/api/repository"

	"gorm.io/gorm"
)

type UpvoteService interface {
	// Toggle adds the identity's upvote if absent, removes it if present, and
	// reports which branch occurred.
	Toggle(ctx context.Context, postID string, identity Identity) (*dto.UpvoteToggleResponse, error)
	// Status returns the post's total and, for a valid identity, whether it
	// currently holds an upvote.
	Status(ctx context.Context, postID string, identity Identity) (*dto.UpvoteStatusResponse, error)
}

type upvoteService struct {
	upvoteRepo repository.UpvoteRepository
	postRepo   repository.PostRepository
}

func NewUpvoteService(upvoteRepo repository.UpvoteRepository, postRepo repository.PostRepository) UpvoteService {
	return &upvoteService{
		upvoteRepo: upvoteRepo,
		postRepo:   postRepo,
	}
}

func (s *upvoteService) Toggle(ctx context.Context, postID string, identity Identity) (*dto.UpvoteToggleResponse, error) {
	if err := identity.validate(); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("post %s", postID)
		}
		return nil, err
	}

	existing, err := s.findExisting(ctx, postID, identity)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	added := false
	if existing != nil {
		if err := s.upvoteRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	} else {
		upvote := &models.Upvote{PostID: postID}
		if userID, ok := identity.UserID(); ok {
			upvote.UserID = &userID
		}
		if anonID, ok := identity.AnonID(); ok {
			upvote.AnonID = &anonID
		}
		err := s.upvoteRepo.Create(ctx, upvote)
		// a concurrent toggle may have created the row first; either way the
		// vote is now present
		if err != nil && !repository.IsDuplicateKey(err) {
			return nil, err
		}
		added = true
	}

	total, err := s.upvoteRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &dto.UpvoteToggleResponse{PostID: postID, Added: added, Total: total}, nil
}

func (s *upvoteService) Status(ctx context.Context, postID string, identity Identity) (*dto.UpvoteStatusResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("post %s", postID)
		}
		return nil, err
	}

	total, err := s.upvoteRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	hasUpvoted := false
	if identity.validate() == nil {
		existing, err := s.findExisting(ctx, postID, identity)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hasUpvoted = existing != nil
	}

	return &dto.UpvoteStatusResponse{PostID: postID, Total: total, HasUpvoted: hasUpvoted}, nil
}

func (s *upvoteService) findExisting(ctx context.Context, postID string, identity Identity) (*models.Upvote, error) {
	if userID, ok := identity.UserID(); ok {
		return s.upvoteRepo.FindByPostAndUser(ctx, postID, userID)
	}
	anonID, _ := identity.AnonID()
	return s.upvoteRepo.FindByPostAndAnon(ctx, postID, anonID)
}
