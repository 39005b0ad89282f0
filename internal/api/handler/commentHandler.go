package handler

import (
	"net/http"

	"epicode/internal/api/dto"
	"epicode/internal/api/middleware"
	"epicode/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService  service.CommentService
	reactionService service.ReactionService
}

func NewCommentHandler(commentService service.CommentService, reactionService service.ReactionService) *CommentHandler {
	return &CommentHandler{
		commentService:  commentService,
		reactionService: reactionService,
	}
}

// RegisterPostRoutes mounts the per-post comment endpoints under the posts
// group; creation is dual-mode so it only carries optional auth.
func (h *CommentHandler) RegisterPostRoutes(posts *gin.RouterGroup, authOptional gin.HandlerFunc) {
	posts.GET("/:id/comments", h.ListByPost)
	posts.POST("/:id/comments", authOptional, h.Create)
}

// RegisterRoutes mounts the direct comment endpoints: moderation requires
// auth, reacting is dual-mode.
func (h *CommentHandler) RegisterRoutes(comments *gin.RouterGroup, authRequired, authOptional gin.HandlerFunc) {
	comments.PUT("/:id", authRequired, h.Update)
	comments.DELETE("/:id", authRequired, h.Delete)
	comments.POST("/:id/react", authOptional, h.React)
}

// GET /api/posts/:id/comments
func (h *CommentHandler) ListByPost(c *gin.Context) {
	thread, err := h.commentService.ListThread(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": thread})
}

// POST /api/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var author service.Authorship
	if actor, ok := middleware.ActorFrom(c); ok {
		author = service.AuthoredBy(actor.ID)
	} else {
		author = service.AnonymousAuthor(req.Name, req.Email)
	}

	created, err := h.commentService.Create(c.Request.Context(), c.Param("id"), author, req.Content, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.commentService.Update(c.Request.Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// POST /api/comments/:id/react
func (h *CommentHandler) React(c *gin.Context) {
	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var identity service.Identity
	if actor, ok := middleware.ActorFrom(c); ok {
		identity = service.UserIdentity(actor.ID)
	} else {
		identity = service.AnonIdentity(req.AnonID)
	}

	reaction, err := h.reactionService.React(c.Request.Context(), c.Param("id"), identity, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": reaction})
}
