package catalog

import "time"

type CreateCollegeRequest struct {
	Code        string `json:"code" binding:"required,max=16"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateCollegeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type CreateSchoolRequest struct {
	CollegeID   int64  `json:"college_id" binding:"required"`
	Code        string `json:"code" binding:"required,max=16"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateAcademicYearRequest struct {
	YearCode  string    `json:"year_code" binding:"required"` // e.g. "2025-2026"
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

type CreateSemesterRequest struct {
	AcademicYearID int64     `json:"academic_year_id" binding:"required"`
	Name           string    `json:"name" binding:"required"`
	Code           string    `json:"code" binding:"required"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
}

type CreateModuleRequest struct {
	ModuleCode    string `json:"module_code" binding:"required,max=16"`
	SchoolID      int64  `json:"school_id" binding:"required"`
	SemesterID    int64  `json:"semester_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Credits       int    `json:"credits" binding:"required,min=1,max=30"`
	LecturerName  string `json:"lecturer_name"`
	LecturerEmail string `json:"lecturer_email" binding:"omitempty,email"`
	Tags          string `json:"tags"`
	ModuleType    string `json:"module_type" binding:"required"`
	MaxStudents   int    `json:"max_students" binding:"min=0"`
}

type UpdateModuleRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	Credits          *int    `json:"credits"`
	LecturerName     *string `json:"lecturer_name"`
	LecturerEmail    *string `json:"lecturer_email"`
	Tags             *string `json:"tags"`
	MaxStudents      *int    `json:"max_students"`
	IsEnrollmentOpen *bool   `json:"is_enrollment_open"`
	IsActive         *bool   `json:"is_active"`
}

type ListModulesQuery struct {
	SchoolID   int64  `form:"school_id"`
	SemesterID int64  `form:"semester_id"`
	Search     string `form:"search"`
	OpenOnly   bool   `form:"open_only"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}
