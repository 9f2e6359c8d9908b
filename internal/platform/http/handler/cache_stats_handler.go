package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orgair_backend/internal/platform/cache"
)

// CacheStatsHandler exposes the cache layer's operational counters.
type CacheStatsHandler struct {
	store *cache.Store
}

// NewCacheStatsHandler creates a new CacheStatsHandler.
func NewCacheStatsHandler(store *cache.Store) *CacheStatsHandler {
	return &CacheStatsHandler{store: store}
}

// Stats handles GET /api/cache/stats.
func (h *CacheStatsHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Stats(c.Request.Context()))
}
