package domain

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Enrollment links a student to a module within one academic year.
// The (student, module, year) combination is unique.
type Enrollment struct {
	ID             int64            `gorm:"column:id;primaryKey" json:"id"`
	StudentID      int64            `gorm:"column:student_id;index:idx_student_module_year,unique" json:"student_id"`
	ModuleID       int64            `gorm:"column:module_id;index:idx_student_module_year,unique" json:"module_id"`
	AcademicYearID int64            `gorm:"column:academic_year_id;index:idx_student_module_year,unique" json:"academic_year_id"`
	Status         EnrollmentStatus `gorm:"column:status" json:"status"`
	Grade          *float64         `gorm:"column:grade" json:"grade,omitempty"`
	EnrolledAt     time.Time        `gorm:"column:enrolled_at" json:"enrolled_at"`
	UpdatedAt      time.Time        `gorm:"column:updated_at" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollments" }
