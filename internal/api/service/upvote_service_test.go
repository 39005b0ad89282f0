package service

import (
	"context"
	"testing"

	"epicode/internal/api/apperrors"
	"epicode/internal/api/models"
	"epicode/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUpvoteService(db *gorm.DB) UpvoteService {
	return NewUpvoteService(repository.NewUpvoteRepository(db), repository.NewPostRepository(db))
}

func TestUpvoteToggle_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := newUpvoteService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	post := createTestPost(t, db, author.ID)

	added, err := svc.Toggle(context.Background(), post.ID, AnonIdentity("anon-1"))
	require.NoError(t, err)
	assert.True(t, added.Added)
	assert.EqualValues(t, 1, added.Total)

	removed, err := svc.Toggle(context.Background(), post.ID, AnonIdentity("anon-1"))
	require.NoError(t, err)
	assert.False(t, removed.Added)
	assert.EqualValues(t, 0, removed.Total)

	var count int64
	db.Model(&models.Upvote{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpvoteToggle_IdentitiesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	svc := newUpvoteService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	voter := createTestUser(t, db, "voter@example.com", models.RoleUser)
	post := createTestPost(t, db, author.ID)

	_, err := svc.Toggle(context.Background(), post.ID, AnonIdentity("anon-1"))
	require.NoError(t, err)
	result, err := svc.Toggle(context.Background(), post.ID, UserIdentity(voter.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)

	// retracting one vote leaves the other
	result, err = svc.Toggle(context.Background(), post.ID, AnonIdentity("anon-1"))
	require.NoError(t, err)
	assert.False(t, result.Added)
	assert.EqualValues(t, 1, result.Total)
}

func TestUpvoteToggle_RequiresIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := newUpvoteService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	post := createTestPost(t, db, author.ID)

	_, err := svc.Toggle(context.Background(), post.ID, Identity{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpvoteToggle_PostNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newUpvoteService(db)

	_, err := svc.Toggle(context.Background(), "missing-post", AnonIdentity("anon-1"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpvoteStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newUpvoteService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	post := createTestPost(t, db, author.ID)

	_, err := svc.Toggle(context.Background(), post.ID, AnonIdentity("anon-1"))
	require.NoError(t, err)

	status, err := svc.Status(context.Background(), post.ID, AnonIdentity("anon-1"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.Total)
	assert.True(t, status.HasUpvoted)

	status, err = svc.Status(context.Background(), post.ID, AnonIdentity("anon-2"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.Total)
	assert.False(t, status.HasUpvoted)

	// no identity still returns the public total
	status, err = svc.Status(context.Background(), post.ID, Identity{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, status.Total)
	assert.False(t, status.HasUpvoted)
}
