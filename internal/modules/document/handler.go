package document

import (
	"errors"
	"fmt"
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

// RegisterRoutes mounts read/download on the authenticated group and upload
// on the staff group. Delete stays on the authenticated group because the
// service checks uploader-or-admin itself.
func (h *Handler) RegisterRoutes(protected, staff *gin.RouterGroup) {
	protected.GET("/modules/:id/documents", h.ListByModule)
	protected.GET("/documents/:id/download", h.Download)
	protected.DELETE("/documents/:id", h.Delete)

	staff.POST("/documents", h.Upload)
}

func (h *Handler) Upload(c *gin.Context) {
	moduleID, err := strconv.ParseInt(c.PostForm("module_id"), 10, 64)
	if err != nil || moduleID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A valid module_id form field is required")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A file form field is required")
		return
	}

	doc, err := h.service.Upload(c.Request.Context(), c.GetInt64("user_id"), UploadInput{
		ModuleID:    moduleID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		File:        file,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, doc)
}

func (h *Handler) ListByModule(c *gin.Context) {
	moduleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || moduleID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid module id")
		return
	}

	docs, err := h.service.ListByModule(
		c.Request.Context(),
		c.GetInt64("user_id"),
		c.GetString("role"),
		moduleID,
		c.Query("category"),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, docs)
}

func (h *Handler) Download(c *gin.Context) {
	docID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || docID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid document id")
		return
	}

	doc, abs, err := h.service.Download(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), docID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalName))
	c.Header("Content-Type", doc.MimeType)
	c.File(abs)
}

func (h *Handler) Delete(c *gin.Context) {
	docID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || docID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid document id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), docID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Document deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
	case errors.Is(err, ErrModuleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Module not found")
	case errors.Is(err, ErrNotPermitted):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this module's documents")
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the size limit")
	case errors.Is(err, ErrUnsupportedType):
		response.Error(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "File type is not allowed")
	case errors.Is(err, ErrInvalidCategory):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Document operation failed")
	}
}
