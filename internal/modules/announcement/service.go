package announcement

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"courseportal/internal/domain"
	"courseportal/internal/repository"
)

var (
	ErrNotFound       = errors.New("announcement not found")
	ErrModuleNotFound = errors.New("module not found")
	ErrNotPermitted   = errors.New("not permitted")
)

type Service struct {
	announcements *repository.AnnouncementRepository
	modules       *repository.ModuleRepository
	enrollments   *repository.EnrollmentRepository
}

func NewService(
	announcements *repository.AnnouncementRepository,
	modules *repository.ModuleRepository,
	enrollments *repository.EnrollmentRepository,
) *Service {
	return &Service{announcements: announcements, modules: modules, enrollments: enrollments}
}

func (s *Service) Create(ctx context.Context, authorID, moduleID int64, title, content string) (*domain.Announcement, error) {
	if _, err := s.modules.GetByID(ctx, moduleID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModuleNotFound
	} else if err != nil {
		return nil, err
	}

	a := &domain.Announcement{
		ModuleID:    moduleID,
		AuthorID:    authorID,
		Title:       strings.TrimSpace(title),
		Content:     content,
		IsPublished: true,
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListByModule returns the module's announcements. Students must be enrolled;
// staff always read.
func (s *Service) ListByModule(ctx context.Context, userID int64, role string, moduleID int64) ([]domain.Announcement, error) {
	if role != string(domain.RoleAdmin) && role != string(domain.RoleInstructor) {
		enrolled, err := s.enrollments.IsEnrolled(ctx, userID, moduleID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, ErrNotPermitted
		}
	}
	return s.announcements.ListByModule(ctx, moduleID)
}

func (s *Service) Update(ctx context.Context, userID int64, role string, id int64, title, content *string) (*domain.Announcement, error) {
	a, err := s.announcements.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if a.AuthorID != userID && role != string(domain.RoleAdmin) {
		return nil, ErrNotPermitted
	}
	if title != nil {
		a.Title = strings.TrimSpace(*title)
	}
	if content != nil {
		a.Content = *content
	}
	if err := s.announcements.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, role string, id int64) error {
	a, err := s.announcements.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if a.AuthorID != userID && role != string(domain.RoleAdmin) {
		return ErrNotPermitted
	}
	return s.announcements.Delete(ctx, id)
}
