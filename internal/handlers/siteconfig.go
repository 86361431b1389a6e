package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SiteConfigStore persists the single site configuration document.
type SiteConfigStore interface {
	Get(ctx context.Context) (json.RawMessage, error)
	Put(ctx context.Context, data json.RawMessage) error
}

// GetSiteConfig handles GET /api/site-config.
func (h *Handlers) GetSiteConfig(c *gin.Context) {
	data, err := h.siteConfig.Get(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// PutSiteConfig handles PUT /api/site-config. The body replaces the stored
// document wholesale; it only has to be well-formed JSON.
func (h *Handlers) PutSiteConfig(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be valid JSON"})
		return
	}

	if err := h.siteConfig.Put(c.Request.Context(), json.RawMessage(body)); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
