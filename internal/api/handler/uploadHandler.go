package handler

import (
	"io"
	"net/http"

	"epicode/internal/api/service"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type UploadHandler struct {
	uploadService service.UploadService
}

func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	router.POST("", authRequired, h.Upload)
}

// POST /api/uploads  (multipart: image, optional post_id)
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	var postID *string
	if id := c.PostForm("post_id"); id != "" {
		postID = &id
	}

	contentType := fileHeader.Header.Get("Content-Type")
	image, err := h.uploadService.UploadImage(c.Request.Context(), data, contentType, fileHeader.Filename, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": image})
}
