package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"courseportal/internal/domain"
	"courseportal/internal/repository"
)

// Service owns the academic hierarchy: colleges, schools, academic years,
// semesters and modules.
type Service struct {
	colleges *repository.CollegeRepository
	schools  *repository.SchoolRepository
	years    *repository.AcademicYearRepository
	modules  *repository.ModuleRepository
}

func NewService(
	colleges *repository.CollegeRepository,
	schools *repository.SchoolRepository,
	years *repository.AcademicYearRepository,
	modules *repository.ModuleRepository,
) *Service {
	return &Service{colleges: colleges, schools: schools, years: years, modules: modules}
}

// --- Colleges ---

func (s *Service) ListColleges(ctx context.Context, activeOnly bool) ([]domain.College, error) {
	return s.colleges.List(ctx, activeOnly)
}

func (s *Service) GetCollege(ctx context.Context, id int64) (*domain.College, error) {
	c, err := s.colleges.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *Service) CreateCollege(ctx context.Context, req CreateCollegeRequest) (*domain.College, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if _, err := s.colleges.GetByCode(ctx, code); err == nil {
		return nil, ErrDuplicateCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	college := &domain.College{
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.colleges.Create(ctx, college); err != nil {
		return nil, err
	}
	return college, nil
}

func (s *Service) UpdateCollege(ctx context.Context, id int64, req UpdateCollegeRequest) (*domain.College, error) {
	college, err := s.GetCollege(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		college.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		college.Description = *req.Description
	}
	if req.IsActive != nil {
		college.IsActive = *req.IsActive
	}
	if err := s.colleges.Update(ctx, college); err != nil {
		return nil, err
	}
	return college, nil
}

// --- Schools ---

func (s *Service) ListSchools(ctx context.Context, collegeID int64) ([]domain.School, error) {
	return s.schools.List(ctx, collegeID)
}

func (s *Service) CreateSchool(ctx context.Context, req CreateSchoolRequest) (*domain.School, error) {
	if _, err := s.GetCollege(ctx, req.CollegeID); err != nil {
		return nil, err
	}
	school := &domain.School{
		CollegeID:   req.CollegeID,
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.schools.Create(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// --- Academic years ---

func (s *Service) ListAcademicYears(ctx context.Context) ([]domain.AcademicYear, error) {
	return s.years.List(ctx)
}

// ActiveAcademicYear returns the single active year, or ErrNotFound when
// no year is currently active.
func (s *Service) ActiveAcademicYear(ctx context.Context) (*domain.AcademicYear, error) {
	y, err := s.years.GetActive(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return y, err
}

func (s *Service) CreateAcademicYear(ctx context.Context, req CreateAcademicYearRequest) (*domain.AcademicYear, error) {
	year := &domain.AcademicYear{
		YearCode:  strings.TrimSpace(req.YearCode),
		Name:      strings.TrimSpace(req.Name),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.years.Create(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// ActivateAcademicYear marks the year active and deactivates every other
// year in the same transaction.
func (s *Service) ActivateAcademicYear(ctx context.Context, id int64) error {
	year, err := s.years.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if year.IsCompleted {
		return ErrYearCompleted
	}
	return s.years.Activate(ctx, id)
}

func (s *Service) CompleteAcademicYear(ctx context.Context, id int64) error {
	if _, err := s.years.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return s.years.Complete(ctx, id)
}

// --- Semesters ---

func (s *Service) CreateSemester(ctx context.Context, req CreateSemesterRequest) (*domain.Semester, error) {
	year, err := s.years.GetByID(ctx, req.AcademicYearID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if year.IsCompleted {
		return nil, ErrYearCompleted
	}
	sem := &domain.Semester{
		AcademicYearID: year.ID,
		Name:           strings.TrimSpace(req.Name),
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}
	if err := s.years.CreateSemester(ctx, sem); err != nil {
		return nil, err
	}
	return sem, nil
}

func (s *Service) ListSemesters(ctx context.Context, yearID int64) ([]domain.Semester, error) {
	return s.years.ListSemesters(ctx, yearID)
}

// --- Modules ---

func (s *Service) ListModules(ctx context.Context, q ListModulesQuery) ([]domain.Module, int64, error) {
	f := repository.ModuleFilter{
		SchoolID:   q.SchoolID,
		SemesterID: q.SemesterID,
		Search:     q.Search,
		Page:       q.Page,
		Limit:      q.Limit,
	}
	if q.OpenOnly {
		open := true
		f.EnrollmentOpen = &open
	}
	return s.modules.List(ctx, f)
}

func (s *Service) GetModule(ctx context.Context, id int64) (*domain.Module, error) {
	m, err := s.modules.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *Service) CreateModule(ctx context.Context, req CreateModuleRequest) (*domain.Module, error) {
	moduleType, ok := domain.ParseModuleType(req.ModuleType)
	if !ok {
		return nil, ErrInvalidModuleType
	}
	if _, err := s.schools.GetByID(ctx, req.SchoolID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if _, err := s.modules.GetByCode(ctx, req.SchoolID, req.ModuleCode); err == nil {
		return nil, ErrDuplicateCode
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := &domain.Module{
		ModuleCode:    req.ModuleCode,
		SchoolID:      req.SchoolID,
		SemesterID:    req.SemesterID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Credits:       req.Credits,
		LecturerName:  req.LecturerName,
		LecturerEmail: strings.ToLower(strings.TrimSpace(req.LecturerEmail)),
		Tags:          req.Tags,
		ModuleType:    moduleType,
		MaxStudents:   req.MaxStudents,

		IsEnrollmentOpen: true,
		IsActive:         true,
	}
	if err := s.modules.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateModule(ctx context.Context, id int64, req UpdateModuleRequest) (*domain.Module, error) {
	m, err := s.GetModule(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Credits != nil {
		m.Credits = *req.Credits
	}
	if req.LecturerName != nil {
		m.LecturerName = *req.LecturerName
	}
	if req.LecturerEmail != nil {
		m.LecturerEmail = strings.ToLower(strings.TrimSpace(*req.LecturerEmail))
	}
	if req.Tags != nil {
		m.Tags = *req.Tags
	}
	if req.MaxStudents != nil {
		m.MaxStudents = *req.MaxStudents
	}
	if req.IsEnrollmentOpen != nil {
		m.IsEnrollmentOpen = *req.IsEnrollmentOpen
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := s.modules.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
