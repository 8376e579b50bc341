package knowledge

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courseportal/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/knowledge")
	{
		group.GET("/posts", h.ListPosts)
		group.POST("/posts", h.CreatePost)
		group.GET("/posts/:id", h.GetPost)
		group.POST("/posts/:id/like", h.LikePost)
		group.POST("/posts/:id/answers", h.CreateAnswer)
		group.POST("/answers/:id/verify", h.VerifyAnswer)
	}
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	p, err := h.service.CreatePost(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) ListPosts(c *gin.Context) {
	var q ListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	posts, total, err := h.service.ListPosts(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list posts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"posts": posts,
		"total": total,
	})
}

func (h *Handler) GetPost(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	post, answers, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"post":    post,
		"answers": answers,
	})
}

func (h *Handler) LikePost(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.LikePost(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Post liked"})
}

func (h *Handler) CreateAnswer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "content is required")
		return
	}
	a, err := h.service.CreateAnswer(c.Request.Context(), id, c.GetInt64("user_id"), req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) VerifyAnswer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.VerifyAnswer(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Answer verified"})
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
	case errors.Is(err, ErrAnswerNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Answer not found")
	case errors.Is(err, ErrAlreadyLiked):
		response.Error(c, http.StatusConflict, "ALREADY_LIKED", "You have already liked this post")
	case errors.Is(err, ErrInvalidType):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid post type")
	case errors.Is(err, ErrNotPermitted):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not permitted")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Knowledge operation failed")
	}
}
