package enrollment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courseportal/internal/domain"
	"courseportal/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/enrollments")
	{
		group.POST("", h.Enroll)
		group.GET("/me", h.MyEnrollments)
		group.GET("/available", h.AvailableModules)
		group.DELETE("/modules/:id", h.Drop)
	}
}

func (h *Handler) Enroll(c *gin.Context) {
	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "module_id is required")
		return
	}

	studentID := c.GetInt64("user_id")
	e, err := h.service.Enroll(c.Request.Context(), studentID, req.ModuleID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

func (h *Handler) Drop(c *gin.Context) {
	moduleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || moduleID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid module id")
		return
	}

	studentID := c.GetInt64("user_id")
	if err := h.service.Drop(c.Request.Context(), studentID, moduleID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Enrollment dropped"})
}

func (h *Handler) MyEnrollments(c *gin.Context) {
	studentID := c.GetInt64("user_id")

	status := domain.EnrollmentStatus(c.Query("status"))
	switch status {
	case "", domain.EnrollmentActive, domain.EnrollmentCompleted, domain.EnrollmentDropped:
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status filter")
		return
	}

	views, err := h.service.MyEnrollments(c.Request.Context(), studentID, status)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list enrollments")
		return
	}
	response.Success(c, http.StatusOK, views)
}

func (h *Handler) AvailableModules(c *gin.Context) {
	modules, err := h.service.AvailableModules(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list available modules")
		return
	}
	response.Success(c, http.StatusOK, modules)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrModuleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Module not found")
	case errors.Is(err, ErrModuleInactive):
		response.Error(c, http.StatusConflict, "MODULE_INACTIVE", "Module is not active")
	case errors.Is(err, ErrEnrollmentClosed):
		response.Error(c, http.StatusConflict, "ENROLLMENT_CLOSED", "Enrollment is closed for this module")
	case errors.Is(err, ErrModuleFull):
		response.Error(c, http.StatusConflict, "MODULE_FULL", "Module has reached its capacity")
	case errors.Is(err, ErrAlreadyEnrolled):
		response.Error(c, http.StatusConflict, "ALREADY_ENROLLED", "Already enrolled in this module")
	case errors.Is(err, ErrNoActiveYear):
		response.Error(c, http.StatusConflict, "NO_ACTIVE_YEAR", "No active academic year")
	case errors.Is(err, ErrNotEnrolled):
		response.Error(c, http.StatusNotFound, "NOT_ENROLLED", "No active enrollment found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Enrollment operation failed")
	}
}
