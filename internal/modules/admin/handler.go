package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courseportal/internal/domain"
	"courseportal/internal/pkg/response"
	"courseportal/internal/repository"
)

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/overview", h.Overview)
	admin.GET("/users", h.ListUsers)
	admin.PUT("/users/:id/active", h.SetUserActive)
	admin.PUT("/users/:id/role", h.SetUserRole)
	admin.GET("/activity", h.RecentActivity)
}

func (h *Handler) Overview(c *gin.Context) {
	ov, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build overview")
		return
	}
	response.Success(c, http.StatusOK, ov)
}

func (h *Handler) ListUsers(c *gin.Context) {
	f := repository.UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		f.IsActive = &active
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.service.ListUsers(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

func (h *Handler) SetUserActive(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "is_active is required")
		return
	}
	if err := h.service.SetUserActive(c.Request.Context(), id, *req.IsActive); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User updated"})
}

func (h *Handler) SetUserRole(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "role is required")
		return
	}
	role, valid := domain.ParseUserRole(req.Role)
	if !valid {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid role")
		return
	}
	if err := h.service.SetUserRole(c.Request.Context(), id, role); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User role updated"})
}

func (h *Handler) RecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.service.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load activity")
		return
	}
	response.Success(c, http.StatusOK, logs)
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
	if errors.Is(err, ErrUserNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Admin operation failed")
}
