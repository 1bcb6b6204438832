package handlers

import (
	"net/http"

	"agrisolve/internal/http/middleware"
	"agrisolve/internal/services"

	"github.com/gin-gonic/gin"
)

type replyRequest struct {
	Content string `json:"content"`
}

// GET /api/forum/posts
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.forum(c).Browse(c.Request.Context(), services.ForumFilter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": posts, "count": len(posts)})
}

// POST /api/forum/posts
func (h *Handler) CreatePost(c *gin.Context) {
	var in services.PostInput
	if !BindJSONOrError(c, &in) {
		return
	}
	post, err := h.forum(c).Create(c.Request.Context(), middleware.GetRequestContext(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GET /api/forum/posts/:id
func (h *Handler) GetPost(c *gin.Context) {
	thread, err := h.forum(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// POST /api/forum/posts/:id/replies
func (h *Handler) CreateReply(c *gin.Context) {
	var req replyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	reply, err := h.forum(c).Reply(c.Request.Context(), middleware.GetRequestContext(c), c.Param("id"), req.Content)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// POST /api/forum/posts/:id/like
func (h *Handler) LikePost(c *gin.Context) {
	res, err := h.forum(c).ToggleLike(c.Request.Context(), middleware.GetRequestContext(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/forum/posts/:id/replies/:replyId/like
func (h *Handler) LikeReply(c *gin.Context) {
	res, err := h.forum(c).ToggleReplyLike(c.Request.Context(), middleware.GetRequestContext(c), c.Param("id"), c.Param("replyId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/forum/posts/:id/replies/:replyId/accept
func (h *Handler) AcceptReply(c *gin.Context) {
	err := h.forum(c).AcceptReply(c.Request.Context(), middleware.GetRequestContext(c), c.Param("id"), c.Param("replyId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answer accepted", "post_id": c.Param("id"), "reply_id": c.Param("replyId")})
}
