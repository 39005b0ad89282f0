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

type CommentService interface {
	// ListThread returns a post's root comments ascending, each with two
	// levels of replies and reactions. Deeper threads are fetched by listing
	// the sub-thread separately.
	ListThread(ctx context.Context, postID string) ([]dto.CommentView, error)
	Create(ctx context.Context, postID string, author Authorship, content string, parentID *string) (*dto.CreatedComment, error)
	Update(ctx context.Context, actor Actor, commentID, content string) (*dto.CommentView, error)
	Delete(ctx context.Context, actor Actor, commentID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *commentService) ListThread(ctx context.Context, postID string) ([]dto.CommentView, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("post %s", postID)
		}
		return nil, err
	}

	comments, err := s.commentRepo.GetThreadByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, dto.FromModelToCommentView(&comments[i]))
	}
	return views, nil
}

func (s *commentService) Create(ctx context.Context, postID string, author Authorship, content string, parentID *string) (*dto.CreatedComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.Validationf("content is required")
	}
	if err := author.validate(); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("post %s", postID)
		}
		return nil, err
	}

	// a reply's parent must exist and live under the same post
	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Validationf("parent comment does not exist")
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperrors.Validationf("parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		Content:  content,
		PostID:   postID,
		ParentID: parentID,
	}
	if author.userID != "" {
		comment.UserID = &author.userID
	} else {
		comment.Name = &author.name
		comment.Email = &author.email
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return &dto.CreatedComment{ID: comment.ID, CreatedAt: comment.CreatedAt}, nil
}

func (s *commentService) Update(ctx context.Context, actor Actor, commentID, content string) (*dto.CommentView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.Validationf("content is required")
	}

	comment, err := s.moderatedComment(ctx, actor, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	view := dto.FromModelToCommentView(comment)
	return &view, nil
}

func (s *commentService) Delete(ctx context.Context, actor Actor, commentID string) error {
	if _, err := s.moderatedComment(ctx, actor, commentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

// moderatedComment loads the comment (not-found precedes authorization) and
// evaluates the moderation policy against fresh ownership facts.
func (s *commentService) moderatedComment(ctx context.Context, actor Actor, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("comment %s", commentID)
		}
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}

	decision := CanModerateComment(actor, CommentOwnership{
		CommentAuthorID: comment.UserID,
		PostAuthorID:    post.AuthorID,
	})
	if !decision.Allowed {
		return nil, apperrors.Forbiddenf("not allowed to modify this comment")
	}

	return comment, nil
}
