package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"courseportal/internal/domain"
	"courseportal/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// Overview aggregates the counters shown on the admin dashboard.
type Overview struct {
	UsersByRole map[string]int64   `json:"users_by_role"`
	Colleges    int64              `json:"colleges"`
	Schools     int64              `json:"schools"`
	Modules     int64              `json:"modules"`
	Enrollments int64              `json:"enrollments"`
	Documents   int64              `json:"documents"`
	Posts       int64              `json:"posts"`
	Activity    []domain.SystemLog `json:"recent_activity"`
}

type Service struct {
	users       *repository.UserRepository
	colleges    *repository.CollegeRepository
	schools     *repository.SchoolRepository
	modules     *repository.ModuleRepository
	enrollments *repository.EnrollmentRepository
	documents   *repository.DocumentRepository
	posts       *repository.KnowledgeRepository
	logs        *repository.SystemLogRepository
}

func NewService(
	users *repository.UserRepository,
	colleges *repository.CollegeRepository,
	schools *repository.SchoolRepository,
	modules *repository.ModuleRepository,
	enrollments *repository.EnrollmentRepository,
	documents *repository.DocumentRepository,
	posts *repository.KnowledgeRepository,
	logs *repository.SystemLogRepository,
) *Service {
	return &Service{
		users:       users,
		colleges:    colleges,
		schools:     schools,
		modules:     modules,
		enrollments: enrollments,
		documents:   documents,
		posts:       posts,
		logs:        logs,
	}
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	ov := &Overview{}

	var err error
	if ov.UsersByRole, err = s.users.CountByRole(ctx); err != nil {
		return nil, err
	}
	if ov.Colleges, err = s.colleges.Count(ctx); err != nil {
		return nil, err
	}
	if ov.Schools, err = s.schools.Count(ctx); err != nil {
		return nil, err
	}
	if ov.Modules, err = s.modules.Count(ctx); err != nil {
		return nil, err
	}
	if ov.Enrollments, err = s.enrollments.Count(ctx); err != nil {
		return nil, err
	}
	if ov.Documents, err = s.documents.Count(ctx); err != nil {
		return nil, err
	}
	if ov.Posts, err = s.posts.CountPosts(ctx); err != nil {
		return nil, err
	}
	if ov.Activity, err = s.logs.Recent(ctx, 20); err != nil {
		return nil, err
	}
	return ov, nil
}

func (s *Service) ListUsers(ctx context.Context, f repository.UserFilter) ([]domain.User, int64, error) {
	return s.users.List(ctx, f)
}

// SetUserActive enables or disables an account. Disabled accounts cannot
// log in or consume magic links.
func (s *Service) SetUserActive(ctx context.Context, id int64, active bool) error {
	if _, err := s.users.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}
	return s.users.SetActive(ctx, id, active)
}

func (s *Service) SetUserRole(ctx context.Context, id int64, role domain.UserRole) error {
	if _, err := s.users.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}
	return s.users.SetRole(ctx, id, role)
}

func (s *Service) RecentActivity(ctx context.Context, limit int) ([]domain.SystemLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.logs.Recent(ctx, limit)
}
