package handler

import (
	"net/http"

	"epicode/internal/api/dto"
	"epicode/internal/api/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagService service.TagService
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	router.GET("", h.List)
	router.POST("", authRequired, h.Create)
	router.PUT("/:id", authRequired, h.Update)
	router.DELETE("/:id", authRequired, h.Delete)
}

// GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// POST /api/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": tag})
}

// PUT /api/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tag})
}

// DELETE /api/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.tagService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}
