package announcement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courseportal/internal/pkg/response"
)

type CreateRequest struct {
	ModuleID int64  `json:"module_id" binding:"required"`
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
}

type UpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected, staff *gin.RouterGroup) {
	protected.GET("/modules/:id/announcements", h.ListByModule)

	staff.POST("/announcements", h.Create)
	staff.PUT("/announcements/:id", h.Update)
	staff.DELETE("/announcements/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	a, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req.ModuleID, req.Title, req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) ListByModule(c *gin.Context) {
	moduleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || moduleID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid module id")
		return
	}
	list, err := h.service.ListByModule(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), moduleID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid announcement id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	a, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id, req.Title, req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid announcement id")
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Announcement deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Announcement not found")
	case errors.Is(err, ErrModuleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Module not found")
	case errors.Is(err, ErrNotPermitted):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not permitted")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Announcement operation failed")
	}
}
