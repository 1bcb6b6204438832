package handlers

import (
	"net/http"

	"agrisolve/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/advisory/tips
func (h *Handler) AdvisoryTips(c *gin.Context) {
	var req services.AdvisoryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	tips, err := services.AdvisoryService{}.Tips(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tips": tips, "count": len(tips)})
}
