package enrollment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"courseportal/internal/domain"
	"courseportal/internal/repository"
)

type Service struct {
	enrollments *repository.EnrollmentRepository
	modules     *repository.ModuleRepository
	years       *repository.AcademicYearRepository
	activity    *repository.SystemLogRepository
}

func NewService(
	enrollments *repository.EnrollmentRepository,
	modules *repository.ModuleRepository,
	years *repository.AcademicYearRepository,
	activity *repository.SystemLogRepository,
) *Service {
	return &Service{enrollments: enrollments, modules: modules, years: years, activity: activity}
}

// Enroll registers the student on a module within the active academic year.
// A previously dropped enrollment for the same (module, year) is reactivated
// rather than duplicated.
func (s *Service) Enroll(ctx context.Context, studentID, moduleID int64) (*domain.Enrollment, error) {
	module, err := s.modules.GetByID(ctx, moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}
	if !module.IsActive {
		return nil, ErrModuleInactive
	}
	if !module.IsEnrollmentOpen {
		return nil, ErrEnrollmentClosed
	}

	year, err := s.years.GetActive(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveYear
	}
	if err != nil {
		return nil, err
	}

	if existing, err := s.enrollments.Get(ctx, studentID, moduleID, year.ID); err == nil {
		if existing.Status == domain.EnrollmentDropped {
			if err := s.enrollments.UpdateStatus(ctx, existing.ID, domain.EnrollmentActive); err != nil {
				return nil, err
			}
			existing.Status = domain.EnrollmentActive
			s.record(ctx, studentID, "enrollment.reactivate", module.ModuleCode)
			return existing, nil
		}
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if module.MaxStudents > 0 {
		count, err := s.enrollments.CountActiveByModule(ctx, moduleID)
		if err != nil {
			return nil, err
		}
		if count >= int64(module.MaxStudents) {
			return nil, ErrModuleFull
		}
	}

	e := &domain.Enrollment{
		StudentID:      studentID,
		ModuleID:       moduleID,
		AcademicYearID: year.ID,
		Status:         domain.EnrollmentActive,
		EnrolledAt:     time.Now().UTC(),
	}
	if err := s.enrollments.Create(ctx, e); err != nil {
		return nil, err
	}
	s.record(ctx, studentID, "enrollment.create", module.ModuleCode)
	return e, nil
}

// Drop marks the student's active enrollment on the module as dropped
// within the active academic year.
func (s *Service) Drop(ctx context.Context, studentID, moduleID int64) error {
	year, err := s.years.GetActive(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoActiveYear
	}
	if err != nil {
		return err
	}

	e, err := s.enrollments.Get(ctx, studentID, moduleID, year.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotEnrolled
	}
	if err != nil {
		return err
	}
	if e.Status != domain.EnrollmentActive {
		return ErrNotEnrolled
	}
	if err := s.enrollments.UpdateStatus(ctx, e.ID, domain.EnrollmentDropped); err != nil {
		return err
	}
	s.record(ctx, studentID, "enrollment.drop", fmt.Sprintf("module_id=%d", moduleID))
	return nil
}

// MyEnrollments returns the student's enrollments with their modules loaded.
func (s *Service) MyEnrollments(ctx context.Context, studentID int64, status domain.EnrollmentStatus) ([]EnrollmentView, error) {
	list, err := s.enrollments.ListByStudent(ctx, studentID, status)
	if err != nil {
		return nil, err
	}
	views := make([]EnrollmentView, 0, len(list))
	for _, e := range list {
		v := EnrollmentView{
			ID:         e.ID,
			Status:     e.Status,
			Grade:      e.Grade,
			EnrolledAt: e.EnrolledAt,
		}
		if m, err := s.modules.GetByID(ctx, e.ModuleID); err == nil {
			v.Module = m
		}
		views = append(views, v)
	}
	return views, nil
}

// AvailableModules lists open, active modules the student is not already
// enrolled in.
func (s *Service) AvailableModules(ctx context.Context, studentID int64) ([]domain.Module, error) {
	enrolledIDs, err := s.enrollments.EnrolledModuleIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}

	open := true
	modules, _, err := s.modules.List(ctx, repository.ModuleFilter{
		EnrollmentOpen: &open,
		Limit:          100,
	})
	if err != nil {
		return nil, err
	}

	taken := make(map[int64]bool, len(enrolledIDs))
	for _, id := range enrolledIDs {
		taken[id] = true
	}
	available := make([]domain.Module, 0, len(modules))
	for _, m := range modules {
		if !taken[m.ID] {
			available = append(available, m)
		}
	}
	return available, nil
}

// IsEnrolled reports whether the student has any non-dropped enrollment on
// the module, across years. Document access uses this.
func (s *Service) IsEnrolled(ctx context.Context, studentID, moduleID int64) (bool, error) {
	return s.enrollments.IsEnrolled(ctx, studentID, moduleID)
}

func (s *Service) record(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Record(ctx, &domain.SystemLog{
		UserID:  &userID,
		Action:  action,
		Details: details,
	})
}
