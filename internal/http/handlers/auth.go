package handlers

import (
	"net/http"

	"agrisolve/internal/http/middleware"
	"agrisolve/internal/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.auth(c).Register(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := h.auth(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/me
func (h *Handler) Me(c *gin.Context) {
	u, err := h.auth(c).Profile(c.Request.Context(), middleware.GetRequestContext(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/me
func (h *Handler) UpdateMe(c *gin.Context) {
	var req services.ProfileInput
	if !BindJSONOrError(c, &req) {
		return
	}
	u, err := h.auth(c).UpdateProfile(c.Request.Context(), middleware.GetRequestContext(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
