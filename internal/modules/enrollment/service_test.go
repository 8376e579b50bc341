package enrollment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"courseportal/internal/database"
	"courseportal/internal/domain"
	"courseportal/internal/repository"
)

type fixture struct {
	service *Service
	db      *gorm.DB
	student *domain.User
	module  *domain.Module
	year    *domain.AcademicYear
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewEnrollmentRepository(db),
		repository.NewModuleRepository(db),
		repository.NewAcademicYearRepository(db),
		repository.NewSystemLogRepository(db),
	)

	student := &domain.User{Email: "student@ur.ac.rw", Name: "Student", Role: domain.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(student).Error)

	year := &domain.AcademicYear{
		YearCode:  "2025-2026",
		Name:      "Academic Year 2025-2026",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
	require.NoError(t, db.Create(year).Error)

	module := &domain.Module{
		ModuleCode:       "CSC101",
		SchoolID:         1,
		SemesterID:       1,
		Name:             "Intro to Computing",
		Credits:          10,
		ModuleType:       domain.ModuleTypeCore,
		MaxStudents:      2,
		IsEnrollmentOpen: true,
		IsActive:         true,
	}
	require.NoError(t, db.Create(module).Error)

	return &fixture{service: svc, db: db, student: student, module: module, year: year}
}

func (f *fixture) newStudent(t *testing.T, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Role: domain.RoleStudent, IsActive: true}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func TestEnrollHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentActive, e.Status)
	assert.Equal(t, f.year.ID, e.AcademicYearID)
}

func TestEnrollDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)

	_, err = f.service.Enroll(ctx, f.student.ID, f.module.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollUnknownModule(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Enroll(context.Background(), f.student.ID, 9999)
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestEnrollClosedModule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Model(f.module).Update("is_enrollment_open", false).Error)

	_, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	assert.ErrorIs(t, err, ErrEnrollmentClosed)
}

func TestEnrollCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)
	_, err = f.service.Enroll(ctx, f.newStudent(t, "b@ur.ac.rw").ID, f.module.ID)
	require.NoError(t, err)

	_, err = f.service.Enroll(ctx, f.newStudent(t, "c@ur.ac.rw").ID, f.module.ID)
	assert.ErrorIs(t, err, ErrModuleFull)
}

func TestEnrollWithoutActiveYear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Model(f.year).Update("is_active", false).Error)

	_, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	assert.ErrorIs(t, err, ErrNoActiveYear)
}

func TestDropAndReenroll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.Drop(ctx, f.student.ID, f.module.ID))

	// Dropping twice fails.
	assert.ErrorIs(t, f.service.Drop(ctx, f.student.ID, f.module.ID), ErrNotEnrolled)

	// Re-enrolling reactivates the same row instead of violating the
	// unique (student, module, year) constraint.
	second, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.EnrollmentActive, second.Status)
}

func TestDropNeverEnrolled(t *testing.T) {
	f := newFixture(t)

	err := f.service.Drop(context.Background(), f.student.ID, f.module.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestMyEnrollmentsIncludesModule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)

	views, err := f.service.MyEnrollments(ctx, f.student.ID, "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Module)
	assert.Equal(t, "CSC101", views[0].Module.ModuleCode)
}

func TestAvailableModulesExcludesEnrolled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &domain.Module{
		ModuleCode: "MAT201", SchoolID: 1, SemesterID: 1, Name: "Calculus",
		Credits: 10, ModuleType: domain.ModuleTypeCore,
		IsEnrollmentOpen: true, IsActive: true,
	}
	require.NoError(t, f.db.Create(other).Error)

	_, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)

	available, err := f.service.AvailableModules(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "MAT201", available[0].ModuleCode)
}

func TestCapacityIgnoresDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Enroll(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)
	_, err = f.service.Enroll(ctx, f.newStudent(t, "b@ur.ac.rw").ID, f.module.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.Drop(ctx, f.student.ID, f.module.ID))

	// The freed seat can be taken by someone else.
	_, err = f.service.Enroll(ctx, f.newStudent(t, "c@ur.ac.rw").ID, f.module.ID)
	assert.NoError(t, err)
}
