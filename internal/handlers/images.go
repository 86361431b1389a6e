package handlers

import (
	"io"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxImageSize caps raw image uploads at 10 MiB.
const maxImageSize = 10 << 20

// UploadImage handles POST /api/upload/image. The body is the raw image
// bytes; the original filename travels in the Slug header and only its
// extension survives sanitization.
func (h *Handlers) UploadImage(c *gin.Context) {
	filename := c.GetHeader("Slug")
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing Slug header"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImageSize+1))
	if err != nil {
		h.logger.Warn("failed to read upload body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(data) > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	imageURL, err := h.images.Upload(c.Request.Context(), filename, c.ContentType(), data)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imageUrl": imageURL})
}

// DeleteImage handles POST /api/upload/image/delete. Clients send either the
// full imageUrl or just the stored filename.
func (h *Handlers) DeleteImage(c *gin.Context) {
	var req struct {
		ImageURL string `json:"imageUrl"`
		Filename string `json:"filename"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	target := req.Filename
	if target == "" {
		target = path.Base(req.ImageURL)
	}
	if target == "" || target == "." || target == "/" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imageUrl or filename is required"})
		return
	}

	if err := h.images.Delete(c.Request.Context(), target); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
