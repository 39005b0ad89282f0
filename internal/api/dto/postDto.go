package dto

import (
	"time"

	"epicode/internal/api/models"
)

type CreatePostRequest struct {
	Title     string   `json:"title" binding:"required,min=1,max=300"`
	Content   string   `json:"content" binding:"required"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
	Excerpt   *string  `json:"excerpt"`
	Image     *string  `json:"image"`
	ReadTime  *int     `json:"read_time" binding:"omitempty,min=1"`
}

// UpdatePostRequest carries partial updates: nil fields keep their prior
// value. A non-nil Tags slice replaces the whole tag set.
type UpdatePostRequest struct {
	Title     *string  `json:"title" binding:"omitempty,min=1,max=300"`
	Content   *string  `json:"content"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
	Excerpt   *string  `json:"excerpt"`
	Image     *string  `json:"image"`
	ReadTime  *int     `json:"read_time" binding:"omitempty,min=1"`
}

type PublishRequest struct {
	Published *bool `json:"published"`
}

type PostCounts struct {
	Upvotes  int64 `json:"upvotes"`
	Comments int64 `json:"comments"`
}

type PostSummary struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Excerpt   string      `json:"excerpt"`
	Image     *string     `json:"image,omitempty"`
	Published bool        `json:"published"`
	ReadTime  int         `json:"read_time"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Author    UserSummary `json:"author"`
	Tags      []string    `json:"tags"`
	Counts    PostCounts  `json:"counts"`
}

type PostDetail struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Excerpt   *string             `json:"excerpt,omitempty"`
	Image     *string             `json:"image,omitempty"`
	Published bool                `json:"published"`
	ReadTime  int                 `json:"read_time"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Author    UserSummary         `json:"author"`
	Tags      []string            `json:"tags"`
	Counts    PostCounts          `json:"counts"`
	Comments  []PostDetailComment `json:"comments"`
}

// PostDetailComment is the flat comment row embedded in the post detail view;
// Author resolves to the registered user, the anonymous name/email pair, or
// null when neither is present.
type PostDetailComment struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Author    *CommentAuthor `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
}

type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type PaginatedPosts struct {
	Data []PostSummary `json:"data"`
	Meta PageMeta      `json:"meta"`
}

type CreatedPost struct {
	ID string `json:"id"`
}

type PublishState struct {
	ID        string `json:"id"`
	Published bool   `json:"published"`
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

// FromModelToPostSummary maps a post to its list representation, falling back
// to a content prefix when no excerpt was stored.
func FromModelToPostSummary(post *models.Post, upvotes, comments int64) PostSummary {
	excerpt := ""
	if post.Excerpt != nil {
		excerpt = *post.Excerpt
	} else if len(post.Content) > 300 {
		excerpt = post.Content[:300]
	} else {
		excerpt = post.Content
	}

	return PostSummary{
		ID:        post.ID,
		Title:     post.Title,
		Excerpt:   excerpt,
		Image:     post.Image,
		Published: post.Published,
		ReadTime:  post.ReadTime,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		Author:    FromModelToUserSummary(&post.Author),
		Tags:      tagNames(post.Tags),
		Counts:    PostCounts{Upvotes: upvotes, Comments: comments},
	}
}

func FromModelToPostDetail(post *models.Post, upvotes int64) PostDetail {
	comments := make([]PostDetailComment, 0, len(post.Comments))
	for i := range post.Comments {
		comment := &post.Comments[i]
		comments = append(comments, PostDetailComment{
			ID:        comment.ID,
			Content:   comment.Content,
			Author:    ResolveCommentAuthor(comment),
			CreatedAt: comment.CreatedAt,
		})
	}

	return PostDetail{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Excerpt:   post.Excerpt,
		Image:     post.Image,
		Published: post.Published,
		ReadTime:  post.ReadTime,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		Author:    FromModelToUserSummary(&post.Author),
		Tags:      tagNames(post.Tags),
		Counts:    PostCounts{Upvotes: upvotes, Comments: int64(len(post.Comments))},
		Comments:  comments,
	}
}
