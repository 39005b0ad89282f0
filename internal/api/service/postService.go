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

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// ListPostsParams are the public listing filters. Tags filter with logical OR:
// a post matches when it carries at least one of the named tags.
type ListPostsParams struct {
	Query     string
	Tags      []string
	Published *bool
	Page      int
	Limit     int
}

type PostService interface {
	List(ctx context.Context, params ListPostsParams) (*dto.PaginatedPosts, error)
	Get(ctx context.Context, id string) (*dto.PostDetail, error)
	Create(ctx context.Context, actor Actor, req dto.CreatePostRequest) (*dto.CreatedPost, error)
	Update(ctx context.Context, actor Actor, id string, req dto.UpdatePostRequest) (*dto.CreatedPost, error)
	Delete(ctx context.Context, actor Actor, id string) error
	TogglePublish(ctx context.Context, actor Actor, id string, published *bool) (*dto.PublishState, error)
}

type postService struct {
	postRepo    repository.PostRepository
	tagService  TagService
	tagRepo     repository.TagRepository
	commentRepo repository.CommentRepository
	upvoteRepo  repository.UpvoteRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	tagService TagService,
	tagRepo repository.TagRepository,
	commentRepo repository.CommentRepository,
	upvoteRepo repository.UpvoteRepository,
) PostService {
	return &postService{
		postRepo:    postRepo,
		tagService:  tagService,
		tagRepo:     tagRepo,
		commentRepo: commentRepo,
		upvoteRepo:  upvoteRepo,
	}
}

func clampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func (s *postService) List(ctx context.Context, params ListPostsParams) (*dto.PaginatedPosts, error) {
	page, limit := clampPagination(params.Page, params.Limit)
	emptyPage := &dto.PaginatedPosts{
		Data: []dto.PostSummary{},
		Meta: dto.PageMeta{Page: page, Limit: limit, Total: 0},
	}

	filter := repository.PostFilter{
		Query:     params.Query,
		Published: params.Published,
		Page:      page,
		Limit:     limit,
	}

	if len(params.Tags) > 0 {
		names := make([]string, 0, len(params.Tags))
		for _, raw := range params.Tags {
			if name := NormalizeTagName(raw); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			tags, err := s.tagRepo.FindByNames(ctx, names)
			if err != nil {
				return nil, err
			}
			if len(tags) == 0 {
				return emptyPage, nil
			}
			tagIDs := make([]string, 0, len(tags))
			for _, tag := range tags {
				tagIDs = append(tagIDs, tag.ID)
			}
			postIDs, err := s.postRepo.PostIDsByTagIDs(ctx, tagIDs)
			if err != nil {
				return nil, err
			}
			if len(postIDs) == 0 {
				return emptyPage, nil
			}
			filter.PostIDs = postIDs
		}
	}

	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	postIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}
	upvoteCounts, err := s.upvoteRepo.CountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.commentRepo.CountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.PostSummary, 0, len(posts))
	for i := range posts {
		post := &posts[i]
		summaries = append(summaries, dto.FromModelToPostSummary(post, upvoteCounts[post.ID], commentCounts[post.ID]))
	}

	return &dto.PaginatedPosts{
		Data: summaries,
		Meta: dto.PageMeta{Page: page, Limit: limit, Total: total},
	}, nil
}

func (s *postService) Get(ctx context.Context, id string) (*dto.PostDetail, error) {
	post, err := s.postRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("post %s", id)
		}
		return nil, err
	}

	upvotes, err := s.upvoteRepo.CountByPost(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := dto.FromModelToPostDetail(post, upvotes)
	return &detail, nil
}

func (s *postService) Create(ctx context.Context, actor Actor, req dto.CreatePostRequest) (*dto.CreatedPost, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.Validationf("title and content are required")
	}

	readTime := ComputeReadTime(req.Content)
	if req.ReadTime != nil {
		readTime = *req.ReadTime
	}

	post := &models.Post{
		Title:     title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Image:     req.Image,
		Published: req.Published,
		ReadTime:  readTime,
		AuthorID:  actor.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		if err := s.replaceTags(ctx, post.ID, req.Tags); err != nil {
			return nil, err
		}
	}

	return &dto.CreatedPost{ID: post.ID}, nil
}

func (s *postService) Update(ctx context.Context, actor Actor, id string, req dto.UpdatePostRequest) (*dto.CreatedPost, error) {
	post, err := s.ownedPost(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	contentChanged := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.Validationf("title cannot be empty")
		}
		post.Title = title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, apperrors.Validationf("content cannot be empty")
		}
		contentChanged = post.Content != *req.Content
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}
	if req.Image != nil {
		post.Image = req.Image
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	switch {
	case req.ReadTime != nil:
		post.ReadTime = *req.ReadTime
	case contentChanged:
		post.ReadTime = ComputeReadTime(post.Content)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	// nil means the field was absent; an empty slice clears all tags
	if req.Tags != nil {
		if err := s.replaceTags(ctx, post.ID, req.Tags); err != nil {
			return nil, err
		}
	}

	return &dto.CreatedPost{ID: post.ID}, nil
}

func (s *postService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.ownedPost(ctx, actor, id); err != nil {
		return err
	}
	return s.postRepo.DeleteCascade(ctx, id)
}

func (s *postService) TogglePublish(ctx context.Context, actor Actor, id string, published *bool) (*dto.PublishState, error) {
	post, err := s.ownedPost(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if published != nil {
		post.Published = *published
	} else {
		post.Published = !post.Published
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return &dto.PublishState{ID: post.ID, Published: post.Published}, nil
}

// ownedPost loads the post and enforces exact authorship; role is irrelevant
// for post mutations.
func (s *postService) ownedPost(ctx context.Context, actor Actor, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("post %s", id)
		}
		return nil, err
	}
	if post.AuthorID != actor.ID {
		return nil, apperrors.Forbiddenf("only the author can modify this post")
	}
	return post, nil
}

func (s *postService) replaceTags(ctx context.Context, postID string, names []string) error {
	tags, err := s.tagService.Resolve(ctx, names)
	if err != nil {
		return err
	}
	tagIDs := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	return s.postRepo.ReplaceTags(ctx, postID, tagIDs)
}
