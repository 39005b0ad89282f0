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

type ReactionService interface {
	// React upserts the identity's reaction on a comment: at most one row per
	// (comment, identity), latest type wins.
	React(ctx context.Context, commentID string, identity Identity, reactionType string) (*dto.ReactionView, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	commentRepo  repository.CommentRepository
}

func NewReactionService(reactionRepo repository.ReactionRepository, commentRepo repository.CommentRepository) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		commentRepo:  commentRepo,
	}
}

func (s *reactionService) React(ctx context.Context, commentID string, identity Identity, reactionType string) (*dto.ReactionView, error) {
	reactionType = strings.TrimSpace(reactionType)
	if reactionType == "" {
		return nil, apperrors.Validationf("reaction type is required")
	}
	if err := identity.validate(); err != nil {
		return nil, err
	}

	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("comment %s", commentID)
		}
		return nil, err
	}

	existing, err := s.findExisting(ctx, commentID, identity)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Type = reactionType
		if err := s.reactionRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		view := dto.FromModelToReactionView(existing)
		return &view, nil
	}

	reaction := &models.Reaction{
		Type:      reactionType,
		CommentID: commentID,
	}
	if userID, ok := identity.UserID(); ok {
		reaction.UserID = &userID
	}
	if anonID, ok := identity.AnonID(); ok {
		reaction.AnonID = &anonID
	}

	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		if repository.IsDuplicateKey(err) {
			// lost the composite-key race; re-read and overwrite the type
			winner, findErr := s.findExisting(ctx, commentID, identity)
			if findErr != nil {
				return nil, findErr
			}
			winner.Type = reactionType
			if err := s.reactionRepo.Update(ctx, winner); err != nil {
				return nil, err
			}
			view := dto.FromModelToReactionView(winner)
			return &view, nil
		}
		return nil, err
	}

	view := dto.FromModelToReactionView(reaction)
	return &view, nil
}

func (s *reactionService) findExisting(ctx context.Context, commentID string, identity Identity) (*models.Reaction, error) {
	if userID, ok := identity.UserID(); ok {
		return s.reactionRepo.FindByCommentAndUser(ctx, commentID, userID)
	}
	anonID, _ := identity.AnonID()
	return s.reactionRepo.FindByCommentAndAnon(ctx, commentID, anonID)
}
