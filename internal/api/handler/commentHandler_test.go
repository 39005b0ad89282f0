package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"epicode/internal/api/apperrors"
	"epicode/internal/api/dto"
	"epicode/internal/api/handler"
	"epicode/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListThread(ctx context.Context, postID string) ([]dto.CommentView, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CommentView), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, postID string, author service.Authorship, content string, parentID *string) (*dto.CreatedComment, error) {
	args := m.Called(ctx, postID, author, content, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreatedComment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, actor service.Actor, commentID, content string) (*dto.CommentView, error) {
	args := m.Called(ctx, actor, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentView), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, actor service.Actor, commentID string) error {
	args := m.Called(ctx, actor, commentID)
	return args.Error(0)
}

type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) React(ctx context.Context, commentID string, identity service.Identity, reactionType string) (*dto.ReactionView, error) {
	args := m.Called(ctx, commentID, identity, reactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReactionView), args.Error(1)
}

func passthrough() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

func setupCommentRouter(commentSvc *MockCommentService, reactionSvc *MockReactionService, authRequired, authOptional gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewCommentHandler(commentSvc, reactionSvc)
	h.RegisterPostRoutes(r.Group("/api/posts"), authOptional)
	h.RegisterRoutes(r.Group("/api/comments"), authRequired, authOptional)
	return r
}

func TestCommentHandler_Create_Anonymous(t *testing.T) {
	commentSvc := new(MockCommentService)
	reactionSvc := new(MockReactionService)
	r := setupCommentRouter(commentSvc, reactionSvc, rejectAuth(), passthrough())

	author := service.AnonymousAuthor("Visitor", "v@example.com")
	commentSvc.On("Create", mock.Anything, "post-1", author, "hello", (*string)(nil)).
		Return(&dto.CreatedComment{ID: "comment-1", CreatedAt: time.Now()}, nil)

	body, _ := json.Marshal(gin.H{"content": "hello", "name": "Visitor", "email": "v@example.com"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/post-1/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	commentSvc.AssertExpectations(t)
}

func TestCommentHandler_Create_AuthenticatedIgnoresNameFields(t *testing.T) {
	commentSvc := new(MockCommentService)
	reactionSvc := new(MockReactionService)
	r := setupCommentRouter(commentSvc, reactionSvc, rejectAuth(), mockAuth("user-1", "user"))

	// token identity wins even when the body carries name/email
	author := service.AuthoredBy("user-1")
	commentSvc.On("Create", mock.Anything, "post-1", author, "hello", (*string)(nil)).
		Return(&dto.CreatedComment{ID: "comment-1", CreatedAt: time.Now()}, nil)

	body, _ := json.Marshal(gin.H{"content": "hello", "name": "Spoofed", "email": "spoof@example.com"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/post-1/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	commentSvc.AssertExpectations(t)
}

func TestCommentHandler_Update_Forbidden(t *testing.T) {
	commentSvc := new(MockCommentService)
	reactionSvc := new(MockReactionService)
	r := setupCommentRouter(commentSvc, reactionSvc, mockAuth("stranger", "user"), passthrough())

	actor := service.Actor{ID: "stranger", Email: "test@example.com", Role: "user"}
	commentSvc.On("Update", mock.Anything, actor, "comment-1", "edited").
		Return(nil, apperrors.Forbiddenf("not allowed to modify this comment"))

	body, _ := json.Marshal(gin.H{"content": "edited"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/comments/comment-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	commentSvc.AssertExpectations(t)
}

func TestCommentHandler_React_Anonymous(t *testing.T) {
	commentSvc := new(MockCommentService)
	reactionSvc := new(MockReactionService)
	r := setupCommentRouter(commentSvc, reactionSvc, rejectAuth(), passthrough())

	identity := service.AnonIdentity("anon-1")
	anonID := "anon-1"
	reactionSvc.On("React", mock.Anything, "comment-1", identity, "like").
		Return(&dto.ReactionView{ID: "reaction-1", Type: "like", CommentID: "comment-1", AnonID: &anonID}, nil)

	body, _ := json.Marshal(gin.H{"type": "like", "anon_id": "anon-1"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comments/comment-1/react", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	reactionSvc.AssertExpectations(t)
}

func TestCommentHandler_React_MissingType(t *testing.T) {
	commentSvc := new(MockCommentService)
	reactionSvc := new(MockReactionService)
	r := setupCommentRouter(commentSvc, reactionSvc, rejectAuth(), passthrough())

	body, _ := json.Marshal(gin.H{"anon_id": "anon-1"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/comments/comment-1/react", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	reactionSvc.AssertNotCalled(t, "React")
}
