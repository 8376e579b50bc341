package admin

import (
	"context"
	"testing"

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
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewCollegeRepository(db),
		repository.NewSchoolRepository(db),
		repository.NewModuleRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewDocumentRepository(db),
		repository.NewKnowledgeRepository(db),
		repository.NewSystemLogRepository(db),
	)
	return &fixture{service: svc, db: db}
}

func (f *fixture) newUser(t *testing.T, email string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Role: role, IsActive: true}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func TestOverviewCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student := f.newUser(t, "s1@ur.ac.rw", domain.RoleStudent)
	f.newUser(t, "s2@ur.ac.rw", domain.RoleStudent)
	instructor := f.newUser(t, "lec@ur.ac.rw", domain.RoleInstructor)

	college := &domain.College{Code: "CST", Name: "Science and Technology", IsActive: true}
	require.NoError(t, f.db.Create(college).Error)
	school := &domain.School{CollegeID: college.ID, Code: "SoICT", Name: "ICT", IsActive: true}
	require.NoError(t, f.db.Create(school).Error)

	module := &domain.Module{
		ModuleCode: "CSC101",
		SchoolID:   school.ID,
		SemesterID: 1,
		Name:       "Intro to Computing",
		Credits:    10,
		ModuleType: domain.ModuleTypeCore,
		IsActive:   true,
	}
	require.NoError(t, f.db.Create(module).Error)

	require.NoError(t, f.db.Create(&domain.Enrollment{
		StudentID: student.ID, ModuleID: module.ID, AcademicYearID: 1, Status: domain.EnrollmentActive,
	}).Error)
	require.NoError(t, f.db.Create(&domain.Document{
		ModuleID: module.ID, UploadedBy: instructor.ID, Title: "Week 1", Category: "lecture",
		OriginalName: "w1.pdf", FilePath: "2026/01/05/x.pdf", MimeType: "application/pdf", IsPublished: true,
	}).Error)
	require.NoError(t, f.db.Create(&domain.KnowledgePost{
		AuthorID: student.ID, Title: "Exam tips?", Content: "Anything helps", PostType: domain.PostTypeQuestion,
	}).Error)
	require.NoError(t, f.db.Create(&domain.SystemLog{Action: "enrollment.created"}).Error)

	ov, err := f.service.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), ov.UsersByRole[string(domain.RoleStudent)])
	assert.Equal(t, int64(1), ov.UsersByRole[string(domain.RoleInstructor)])
	assert.Equal(t, int64(1), ov.Colleges)
	assert.Equal(t, int64(1), ov.Schools)
	assert.Equal(t, int64(1), ov.Modules)
	assert.Equal(t, int64(1), ov.Enrollments)
	assert.Equal(t, int64(1), ov.Documents)
	assert.Equal(t, int64(1), ov.Posts)
	require.Len(t, ov.Activity, 1)
	assert.Equal(t, "enrollment.created", ov.Activity[0].Action)
}

func TestSetUserActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.newUser(t, "s1@ur.ac.rw", domain.RoleStudent)
	require.NoError(t, f.service.SetUserActive(ctx, u.ID, false))

	var got domain.User
	require.NoError(t, f.db.First(&got, u.ID).Error)
	assert.False(t, got.IsActive)
}

func TestSetUserActiveUnknownUser(t *testing.T) {
	f := newFixture(t)

	err := f.service.SetUserActive(context.Background(), 9999, false)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetUserRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.newUser(t, "lec@ur.ac.rw", domain.RoleStudent)
	require.NoError(t, f.service.SetUserRole(ctx, u.ID, domain.RoleInstructor))

	var got domain.User
	require.NoError(t, f.db.First(&got, u.ID).Error)
	assert.Equal(t, domain.RoleInstructor, got.Role)
}

func TestSetUserRoleUnknownUser(t *testing.T) {
	f := newFixture(t)

	err := f.service.SetUserRole(context.Background(), 9999, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsersFilterByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.newUser(t, "s1@ur.ac.rw", domain.RoleStudent)
	f.newUser(t, "s2@ur.ac.rw", domain.RoleStudent)
	f.newUser(t, "lec@ur.ac.rw", domain.RoleInstructor)

	users, total, err := f.service.ListUsers(ctx, repository.UserFilter{Role: string(domain.RoleStudent)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, u := range users {
		assert.Equal(t, domain.RoleStudent, u.Role)
	}
}

func TestRecentActivityClampsLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.db.Create(&domain.SystemLog{Action: "auth.link_requested"}).Error)
	}

	logs, err := f.service.RecentActivity(ctx, -5)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
