package service

import (
	"context"
	"strings"
	"testing"

	"epicode/internal/api/apperrors"
	"epicode/internal/api/dto"
	"epicode/internal/api/models"
	"epicode/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(db *gorm.DB) PostService {
	tagRepo := repository.NewTagRepository(db)
	return NewPostService(
		repository.NewPostRepository(db),
		NewTagService(tagRepo),
		tagRepo,
		repository.NewCommentRepository(db),
		repository.NewUpvoteRepository(db),
	)
}

func TestPostCreate_Success(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)

	created, err := svc.Create(context.Background(), Actor{ID: author.ID, Role: author.Role}, dto.CreatePostRequest{
		Title:   "Hello",
		Content: strings.Repeat("word ", 400),
		Tags:    []string{"Go", " go ", "testing"},
	})

	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	var post models.Post
	require.NoError(t, db.Preload("Tags").First(&post, "id = ?", created.ID).Error)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, 2, post.ReadTime)
	assert.False(t, post.Published)

	names := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"go", "testing"}, names)
}

func TestPostCreate_MissingFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)

	_, err := svc.Create(context.Background(), Actor{ID: author.ID}, dto.CreatePostRequest{Title: "  ", Content: "body"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(context.Background(), Actor{ID: author.ID}, dto.CreatePostRequest{Title: "Title", Content: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}

func TestPostCreate_ExplicitReadTimeWins(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)

	readTime := 7
	created, err := svc.Create(context.Background(), Actor{ID: author.ID}, dto.CreatePostRequest{
		Title:    "Hello",
		Content:  "short",
		ReadTime: &readTime,
	})
	require.NoError(t, err)

	var post models.Post
	require.NoError(t, db.First(&post, "id = ?", created.ID).Error)
	assert.Equal(t, 7, post.ReadTime)
}

func TestPostUpdate_PartialAndReadTimeRecompute(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	post := createTestPost(t, db, author.ID)
	actor := Actor{ID: author.ID, Role: author.Role}

	newContent := strings.Repeat("word ", 600)
	updated, err := svc.Update(context.Background(), actor, post.ID, dto.UpdatePostRequest{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, post.ID, updated.ID)

	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, "id = ?", post.ID).Error)
	assert.Equal(t, "Test Post", reloaded.Title) // untouched field survives
	assert.Equal(t, 3, reloaded.ReadTime)
}

func TestPostUpdate_NotOwnerForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	other := createTestUser(t, db, "other@example.com", models.RoleAuthor)
	post := createTestPost(t, db, author.ID)

	title := "Hijacked"
	_, err := svc.Update(context.Background(), Actor{ID: other.ID, Role: other.Role}, post.ID, dto.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestPostUpdate_ClearTags(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	actor := Actor{ID: author.ID, Role: author.Role}

	created, err := svc.Create(context.Background(), actor, dto.CreatePostRequest{
		Title:   "Tagged",
		Content: "body",
		Tags:    []string{"go", "web"},
	})
	require.NoError(t, err)

	// empty slice clears the tag set; nil would leave it alone
	_, err = svc.Update(context.Background(), actor, created.ID, dto.UpdatePostRequest{Tags: []string{}})
	require.NoError(t, err)

	var count int64
	db.Model(&models.PostTag{}).Where("post_id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
}

func TestPostDelete_Cascades(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	commenter := createTestUser(t, db, "commenter@example.com", models.RoleUser)
	actor := Actor{ID: author.ID, Role: author.Role}

	created, err := svc.Create(context.Background(), actor, dto.CreatePostRequest{
		Title:   "Doomed",
		Content: "body",
		Tags:    []string{"go", "web"},
	})
	require.NoError(t, err)

	comment := createTestComment(t, db, created.ID, &commenter.ID)
	createTestComment(t, db, created.ID, nil)
	anonID := "anon-1"
	require.NoError(t, db.Create(&models.Reaction{Type: "like", CommentID: comment.ID, AnonID: &anonID}).Error)
	require.NoError(t, db.Create(&models.Upvote{PostID: created.ID, UserID: &commenter.ID}).Error)
	require.NoError(t, db.Create(&models.Upvote{PostID: created.ID, AnonID: &anonID}).Error)

	require.NoError(t, svc.Delete(context.Background(), actor, created.ID))

	counts := map[string]any{
		"posts":             &models.Post{},
		"comments":          &models.Comment{},
		"comment_reactions": &models.Reaction{},
		"upvotes":           &models.Upvote{},
		"post_tags":         &models.PostTag{},
	}
	for table, model := range counts {
		var count int64
		db.Model(model).Count(&count)
		assert.Zerof(t, count, "table %s should be empty", table)
	}

	// tags themselves are never garbage-collected
	var tagCount int64
	db.Model(&models.Tag{}).Count(&tagCount)
	assert.EqualValues(t, 2, tagCount)
}

func TestPostDelete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)

	err := svc.Delete(context.Background(), Actor{ID: author.ID}, "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostList_TagFilterNoMatches(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	createTestPost(t, db, author.ID)

	page, err := svc.List(context.Background(), ListPostsParams{Tags: []string{"nonexistent"}, Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 0, page.Meta.Total)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 10, page.Meta.Limit)
}

func TestPostList_FiltersAndCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	actor := Actor{ID: author.ID, Role: author.Role}

	tagged, err := svc.Create(context.Background(), actor, dto.CreatePostRequest{
		Title:     "Go concurrency patterns",
		Content:   "body",
		Published: true,
		Tags:      []string{"go"},
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), actor, dto.CreatePostRequest{
		Title:     "Unrelated",
		Content:   "body",
		Published: true,
	})
	require.NoError(t, err)

	createTestComment(t, db, tagged.ID, nil)
	anonID := "anon-1"
	require.NoError(t, db.Create(&models.Upvote{PostID: tagged.ID, AnonID: &anonID}).Error)

	page, err := svc.List(context.Background(), ListPostsParams{Tags: []string{"GO"}, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, tagged.ID, page.Data[0].ID)
	assert.EqualValues(t, 1, page.Data[0].Counts.Upvotes)
	assert.EqualValues(t, 1, page.Data[0].Counts.Comments)

	page, err = svc.List(context.Background(), ListPostsParams{Query: "concurrency", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, tagged.ID, page.Data[0].ID)
}

func TestPostTogglePublish(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	post := createTestPost(t, db, author.ID)
	actor := Actor{ID: author.ID, Role: author.Role}

	// no explicit value flips the current state
	state, err := svc.TogglePublish(context.Background(), actor, post.ID, nil)
	require.NoError(t, err)
	assert.False(t, state.Published)

	// explicit value is authoritative, even when redundant
	explicit := false
	state, err = svc.TogglePublish(context.Background(), actor, post.ID, &explicit)
	require.NoError(t, err)
	assert.False(t, state.Published)

	explicit = true
	state, err = svc.TogglePublish(context.Background(), actor, post.ID, &explicit)
	require.NoError(t, err)
	assert.True(t, state.Published)
}

func TestPostGet_Detail(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	post := createTestPost(t, db, author.ID)
	createTestComment(t, db, post.ID, nil)

	detail, err := svc.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, detail.ID)
	assert.Equal(t, author.ID, detail.Author.ID)
	require.Len(t, detail.Comments, 1)
	require.NotNil(t, detail.Comments[0].Author)
	assert.Equal(t, "Anon", detail.Comments[0].Author.Name)

	_, err = svc.Get(context.Background(), "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
