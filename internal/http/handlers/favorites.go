package handlers

import (
	"net/http"

	"agrisolve/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	sid := middleware.GetSessionID(c)
	ids, listings, err := h.favorites(c).List(c.Request.Context(), sid)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sid,
		"ids":        ids,
		"items":      listings,
		"count":      len(ids),
	})
}

// POST /api/favorites/:id/toggle
func (h *Handler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	on, err := h.favorites(c).Toggle(c.Request.Context(), middleware.GetSessionID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "favorite": on})
}
