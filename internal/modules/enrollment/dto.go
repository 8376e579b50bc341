package enrollment

import (
	"time"

	"courseportal/internal/domain"
)

type EnrollRequest struct {
	ModuleID int64 `json:"module_id" binding:"required"`
}

// EnrollmentView joins the enrollment row with its module for list output.
type EnrollmentView struct {
	ID         int64                   `json:"id"`
	Status     domain.EnrollmentStatus `json:"status"`
	Grade      *float64                `json:"grade,omitempty"`
	EnrolledAt time.Time               `json:"enrolled_at"`
	Module     *domain.Module          `json:"module,omitempty"`
}
