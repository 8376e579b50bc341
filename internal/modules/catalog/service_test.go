package catalog

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

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewCollegeRepository(db),
		repository.NewSchoolRepository(db),
		repository.NewAcademicYearRepository(db),
		repository.NewModuleRepository(db),
	)
	return svc, db
}

func yearRequest(code string) CreateAcademicYearRequest {
	return CreateAcademicYearRequest{
		YearCode:  code,
		Name:      "Academic Year " + code,
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateCollegeNormalizesCode(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c, err := svc.CreateCollege(ctx, CreateCollegeRequest{Code: " cst ", Name: "College of Science and Technology"})
	require.NoError(t, err)
	assert.Equal(t, "CST", c.Code)
	assert.True(t, c.IsActive)
}

func TestCreateCollegeDuplicateCode(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateCollege(ctx, CreateCollegeRequest{Code: "CST", Name: "First"})
	require.NoError(t, err)

	_, err = svc.CreateCollege(ctx, CreateCollegeRequest{Code: "cst", Name: "Second"})
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestActivateYearDeactivatesOthers(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	y1, err := svc.CreateAcademicYear(ctx, yearRequest("2024-2025"))
	require.NoError(t, err)
	y2, err := svc.CreateAcademicYear(ctx, yearRequest("2025-2026"))
	require.NoError(t, err)

	require.NoError(t, svc.ActivateAcademicYear(ctx, y1.ID))
	require.NoError(t, svc.ActivateAcademicYear(ctx, y2.ID))

	active, err := svc.ActiveAcademicYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, y2.ID, active.ID)

	years, err := svc.ListAcademicYears(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, y := range years {
		if y.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestCompletedYearCannotBeActivated(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	y, err := svc.CreateAcademicYear(ctx, yearRequest("2024-2025"))
	require.NoError(t, err)
	require.NoError(t, svc.CompleteAcademicYear(ctx, y.ID))

	assert.ErrorIs(t, svc.ActivateAcademicYear(ctx, y.ID), ErrYearCompleted)
}

func TestActiveYearNoneActive(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.ActiveAcademicYear(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateModule(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	college, err := svc.CreateCollege(ctx, CreateCollegeRequest{Code: "CST", Name: "Science and Technology"})
	require.NoError(t, err)
	school, err := svc.CreateSchool(ctx, CreateSchoolRequest{CollegeID: college.ID, Code: "SOICT", Name: "School of ICT"})
	require.NoError(t, err)

	req := CreateModuleRequest{
		ModuleCode:  "csc101",
		SchoolID:    school.ID,
		SemesterID:  1,
		Name:        "Intro to Computing",
		Credits:     10,
		ModuleType:  "core",
		MaxStudents: 100,
	}
	m, err := svc.CreateModule(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "CSC101", m.ModuleCode)
	assert.True(t, m.IsEnrollmentOpen)

	_, err = svc.CreateModule(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	req.ModuleCode = "CSC102"
	req.ModuleType = "weird"
	_, err = svc.CreateModule(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidModuleType)
}

func TestUpdateModuleTogglesEnrollment(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	m := &domain.Module{
		ModuleCode: "CSC101", SchoolID: 1, SemesterID: 1,
		Name: "Intro", Credits: 10, ModuleType: domain.ModuleTypeCore,
		IsEnrollmentOpen: true, IsActive: true,
	}
	require.NoError(t, db.Create(m).Error)

	closed := false
	updated, err := svc.UpdateModule(ctx, m.ID, UpdateModuleRequest{IsEnrollmentOpen: &closed})
	require.NoError(t, err)
	assert.False(t, updated.IsEnrollmentOpen)
}

func TestListModulesFilters(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	for _, m := range []*domain.Module{
		{ModuleCode: "CSC101", SchoolID: 1, SemesterID: 1, Name: "Computing", Credits: 10, ModuleType: domain.ModuleTypeCore, IsEnrollmentOpen: true, IsActive: true},
		{ModuleCode: "MAT201", SchoolID: 2, SemesterID: 1, Name: "Calculus", Credits: 10, ModuleType: domain.ModuleTypeCore, IsEnrollmentOpen: false, IsActive: true},
	} {
		require.NoError(t, db.Create(m).Error)
	}

	all, total, err := svc.ListModules(ctx, ListModulesQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	open, _, err := svc.ListModules(ctx, ListModulesQuery{OpenOnly: true})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "CSC101", open[0].ModuleCode)

	bySchool, _, err := svc.ListModules(ctx, ListModulesQuery{SchoolID: 2})
	require.NoError(t, err)
	require.Len(t, bySchool, 1)
	assert.Equal(t, "MAT201", bySchool[0].ModuleCode)

	search, _, err := svc.ListModules(ctx, ListModulesQuery{Search: "calc"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "MAT201", search[0].ModuleCode)
}
