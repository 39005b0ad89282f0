package handler

import (
	"net/http"
	"strconv"
	"strings"

	"epicode/internal/api/dto"
	"epicode/internal/api/middleware"
	"epicode/internal/api/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterRoutes mounts post endpoints: listing and detail are public, all
// mutations require an authenticated actor.
func (h *PostHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	router.GET("", h.List)
	router.GET("/:id", h.Get)
	router.POST("", authRequired, h.Create)
	router.PUT("/:id", authRequired, h.Update)
	router.DELETE("/:id", authRequired, h.Delete)
	router.PATCH("/:id/publish", authRequired, h.TogglePublish)
}

// GET /api/posts?q=&tags=a,b&published=true&page=1&limit=10
func (h *PostHandler) List(c *gin.Context) {
	params := service.ListPostsParams{
		Query: c.Query("q"),
	}

	if tags := c.Query("tags"); tags != "" {
		params.Tags = strings.Split(tags, ",")
	}
	if published := c.Query("published"); published != "" {
		value := published == "true"
		params.Published = &value
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	posts, err := h.postService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.postService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.postService.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.postService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// PATCH /api/posts/:id/publish
func (h *PostHandler) TogglePublish(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.postService.TogglePublish(c.Request.Context(), actor, c.Param("id"), req.Published)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": state})
}
