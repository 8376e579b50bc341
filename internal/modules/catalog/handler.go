package catalog

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

// RegisterRoutes mounts read endpoints on the public group and write
// endpoints behind the admin group. The catalog is browsable without an
// account; only mutations need one.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/colleges", h.ListColleges)
	public.GET("/colleges/:id", h.GetCollege)
	public.GET("/colleges/:id/schools", h.ListSchools)
	public.GET("/academic-years", h.ListAcademicYears)
	public.GET("/academic-years/active", h.ActiveAcademicYear)
	public.GET("/academic-years/:id/semesters", h.ListSemesters)
	public.GET("/modules", h.ListModules)
	public.GET("/modules/:id", h.GetModule)

	admin.POST("/colleges", h.CreateCollege)
	admin.PUT("/colleges/:id", h.UpdateCollege)
	admin.POST("/schools", h.CreateSchool)
	admin.POST("/academic-years", h.CreateAcademicYear)
	admin.POST("/academic-years/:id/activate", h.ActivateAcademicYear)
	admin.POST("/academic-years/:id/complete", h.CompleteAcademicYear)
	admin.POST("/semesters", h.CreateSemester)
	admin.POST("/modules", h.CreateModule)
	admin.PUT("/modules/:id", h.UpdateModule)
}

func (h *Handler) ListColleges(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	colleges, err := h.service.ListColleges(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list colleges")
		return
	}
	response.Success(c, http.StatusOK, colleges)
}

func (h *Handler) GetCollege(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	college, err := h.service.GetCollege(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load college")
		return
	}
	response.Success(c, http.StatusOK, college)
}

func (h *Handler) ListSchools(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	schools, err := h.service.ListSchools(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list schools")
		return
	}
	response.Success(c, http.StatusOK, schools)
}

func (h *Handler) CreateCollege(c *gin.Context) {
	var req CreateCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	college, err := h.service.CreateCollege(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create college")
		return
	}
	response.Success(c, http.StatusCreated, college)
}

func (h *Handler) UpdateCollege(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	college, err := h.service.UpdateCollege(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update college")
		return
	}
	response.Success(c, http.StatusOK, college)
}

func (h *Handler) CreateSchool(c *gin.Context) {
	var req CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	school, err := h.service.CreateSchool(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create school")
		return
	}
	response.Success(c, http.StatusCreated, school)
}

func (h *Handler) ListAcademicYears(c *gin.Context) {
	years, err := h.service.ListAcademicYears(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list academic years")
		return
	}
	response.Success(c, http.StatusOK, years)
}

func (h *Handler) ActiveAcademicYear(c *gin.Context) {
	year, err := h.service.ActiveAcademicYear(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to load active academic year")
		return
	}
	response.Success(c, http.StatusOK, year)
}

func (h *Handler) CreateAcademicYear(c *gin.Context) {
	var req CreateAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	year, err := h.service.CreateAcademicYear(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create academic year")
		return
	}
	response.Success(c, http.StatusCreated, year)
}

func (h *Handler) ActivateAcademicYear(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.ActivateAcademicYear(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to activate academic year")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Academic year activated"})
}

func (h *Handler) CompleteAcademicYear(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.CompleteAcademicYear(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to complete academic year")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Academic year completed"})
}

func (h *Handler) CreateSemester(c *gin.Context) {
	var req CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	sem, err := h.service.CreateSemester(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create semester")
		return
	}
	response.Success(c, http.StatusCreated, sem)
}

func (h *Handler) ListSemesters(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	semesters, err := h.service.ListSemesters(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list semesters")
		return
	}
	response.Success(c, http.StatusOK, semesters)
}

func (h *Handler) ListModules(c *gin.Context) {
	var q ListModulesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	modules, total, err := h.service.ListModules(c.Request.Context(), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list modules")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"modules": modules,
		"total":   total,
	})
}

func (h *Handler) GetModule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.service.GetModule(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load module")
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) CreateModule(c *gin.Context) {
	var req CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	m, err := h.service.CreateModule(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create module")
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) UpdateModule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	m, err := h.service.UpdateModule(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update module")
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrDuplicateCode):
		response.Error(c, http.StatusConflict, "DUPLICATE_CODE", "Code already in use")
	case errors.Is(err, ErrYearCompleted):
		response.Error(c, http.StatusConflict, "YEAR_COMPLETED", "Academic year is already completed")
	case errors.Is(err, ErrInvalidModuleType):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid module type")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

// pathID parses the :id path parameter, writing the error response itself.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
