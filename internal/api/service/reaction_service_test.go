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

func newReactionService(db *gorm.DB) ReactionService {
	return NewReactionService(repository.NewReactionRepository(db), repository.NewCommentRepository(db))
}

func TestReact_UpsertSameIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := newReactionService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	post := createTestPost(t, db, author.ID)
	comment := createTestComment(t, db, post.ID, nil)

	first, err := svc.React(context.Background(), comment.ID, AnonIdentity("anon-1"), "like")
	require.NoError(t, err)
	assert.Equal(t, "like", first.Type)

	second, err := svc.React(context.Background(), comment.ID, AnonIdentity("anon-1"), "heart")
	require.NoError(t, err)
	assert.Equal(t, "heart", second.Type)
	assert.Equal(t, first.ID, second.ID) // same row, overwritten type

	var count int64
	db.Model(&models.Reaction{}).Where("comment_id = ?", comment.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestReact_DistinctIdentitiesCoexist(t *testing.T) {
	db := setupTestDB(t)
	svc := newReactionService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	commenter := createTestUser(t, db, "commenter@example.com", models.RoleUser)
	post := createTestPost(t, db, author.ID)
	comment := createTestComment(t, db, post.ID, nil)

	_, err := svc.React(context.Background(), comment.ID, AnonIdentity("anon-1"), "like")
	require.NoError(t, err)
	_, err = svc.React(context.Background(), comment.ID, AnonIdentity("anon-2"), "like")
	require.NoError(t, err)
	_, err = svc.React(context.Background(), comment.ID, UserIdentity(commenter.ID), "heart")
	require.NoError(t, err)

	var count int64
	db.Model(&models.Reaction{}).Where("comment_id = ?", comment.ID).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestReact_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newReactionService(db)
	author := createTestUser(t, db, "author@example.com", models.RoleAuthor)
	post := createTestPost(t, db, author.ID)
	comment := createTestComment(t, db, post.ID, nil)

	_, err := svc.React(context.Background(), comment.ID, AnonIdentity("anon-1"), "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.React(context.Background(), comment.ID, Identity{}, "like")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReact_CommentNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newReactionService(db)

	_, err := svc.React(context.Background(), "missing-comment", AnonIdentity("anon-1"), "like")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
