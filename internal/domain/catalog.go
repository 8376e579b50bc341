package domain

import (
	"strings"
	"time"
)

// College is the top level of the academic hierarchy.
type College struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Code        string    `gorm:"column:code;uniqueIndex" json:"code"`
	Name        string    `gorm:"column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	Schools []School `gorm:"foreignKey:CollegeID" json:"schools,omitempty"`
}

func (College) TableName() string { return "colleges" }

type School struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	CollegeID   int64     `gorm:"column:college_id;index" json:"college_id"`
	Code        string    `gorm:"column:code;uniqueIndex" json:"code"`
	Name        string    `gorm:"column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (School) TableName() string { return "schools" }

// AcademicYear groups semesters; at most one year is active at a time.
type AcademicYear struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	YearCode    string    `gorm:"column:year_code;uniqueIndex" json:"year_code"` // e.g. "2025-2026"
	Name        string    `gorm:"column:name" json:"name"`
	StartDate   time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate     time.Time `gorm:"column:end_date" json:"end_date"`
	IsActive    bool      `gorm:"column:is_active" json:"is_active"`
	IsCompleted bool      `gorm:"column:is_completed" json:"is_completed"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	Semesters []Semester `gorm:"foreignKey:AcademicYearID" json:"semesters,omitempty"`
}

func (AcademicYear) TableName() string { return "academic_years" }

type Semester struct {
	ID             int64     `gorm:"column:id;primaryKey" json:"id"`
	AcademicYearID int64     `gorm:"column:academic_year_id;index" json:"academic_year_id"`
	Name           string    `gorm:"column:name" json:"name"` // e.g. "Semester 1"
	Code           string    `gorm:"column:code" json:"code"` // e.g. "S1"
	StartDate      time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate        time.Time `gorm:"column:end_date" json:"end_date"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Semester) TableName() string { return "semesters" }

type ModuleType string

const (
	ModuleTypeCore       ModuleType = "core"
	ModuleTypeElective   ModuleType = "elective"
	ModuleTypeCompulsory ModuleType = "compulsory"
)

func ParseModuleType(s string) (ModuleType, bool) {
	switch ModuleType(s) {
	case ModuleTypeCore, ModuleTypeElective, ModuleTypeCompulsory:
		return ModuleType(s), true
	}
	return "", false
}

// Module is the main learning unit. Module code is unique within a school.
type Module struct {
	ID            int64      `gorm:"column:id;primaryKey" json:"id"`
	ModuleCode    string     `gorm:"column:module_code;index:idx_school_module,unique" json:"module_code"`
	SchoolID      int64      `gorm:"column:school_id;index:idx_school_module,unique" json:"school_id"`
	SemesterID    int64      `gorm:"column:semester_id;index" json:"semester_id"`
	Name          string     `gorm:"column:name" json:"name"`
	Description   string     `gorm:"column:description" json:"description,omitempty"`
	Credits       int        `gorm:"column:credits" json:"credits"`
	LecturerName  string     `gorm:"column:lecturer_name" json:"lecturer_name,omitempty"`
	LecturerEmail string     `gorm:"column:lecturer_email" json:"lecturer_email,omitempty"`
	Tags          string     `gorm:"column:tags" json:"tags,omitempty"` // comma-separated
	ModuleType    ModuleType `gorm:"column:module_type" json:"module_type"`

	MaxStudents      int  `gorm:"column:max_students" json:"max_students"`
	IsEnrollmentOpen bool `gorm:"column:is_enrollment_open" json:"is_enrollment_open"`
	IsActive         bool `gorm:"column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Module) TableName() string { return "modules" }

func (m *Module) TagList() []string {
	if m.Tags == "" {
		return nil
	}
	parts := strings.Split(m.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
