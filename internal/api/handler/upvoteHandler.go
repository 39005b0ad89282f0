package handler

import (
	"net/http"

	"epicode/internal/api/dto"
	"epicode/internal/api/middleware"
	"epicode/internal/api/service"

	"github.com/gin-gonic/gin"
)

type UpvoteHandler struct {
	upvoteService service.UpvoteService
}

func NewUpvoteHandler(upvoteService service.UpvoteService) *UpvoteHandler {
	return &UpvoteHandler{upvoteService: upvoteService}
}

// RegisterRoutes mounts the upvote endpoints under the posts group; both are
// dual-mode (authenticated user or anonymous id).
func (h *UpvoteHandler) RegisterRoutes(posts *gin.RouterGroup, authOptional gin.HandlerFunc) {
	posts.POST("/:id/upvote", authOptional, h.Toggle)
	posts.GET("/:id/upvotes", authOptional, h.Status)
}

// POST /api/posts/:id/upvote
func (h *UpvoteHandler) Toggle(c *gin.Context) {
	var req dto.UpvoteToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, authed := middleware.ActorFrom(c)
	var actorPtr *service.Actor
	if authed {
		actorPtr = &actor
	}
	identity := service.ResolveIdentity(actorPtr, req.AnonID)

	result, err := h.upvoteService.Toggle(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /api/posts/:id/upvotes?anon_id=
func (h *UpvoteHandler) Status(c *gin.Context) {
	actor, authed := middleware.ActorFrom(c)
	var actorPtr *service.Actor
	if authed {
		actorPtr = &actor
	}
	identity := service.ResolveIdentity(actorPtr, c.Query("anon_id"))

	status, err := h.upvoteService.Status(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
