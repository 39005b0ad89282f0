package service

import (
	"testing"

	"epicode/internal/api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Tag{},
		&models.Post{},
		&models.PostTag{},
		&models.Comment{},
		&models.Reaction{},
		&models.Upvote{},
		&models.Image{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashedpassword",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID string) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:     "Test Post",
		Content:   "Some content for the post.",
		Published: true,
		ReadTime:  1,
		AuthorID:  authorID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, postID string, userID *string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		Content: "A comment.",
		PostID:  postID,
		UserID:  userID,
	}
	if userID == nil {
		name := "Anon"
		email := "anon@example.com"
		comment.Name = &name
		comment.Email = &email
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
