package document

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"courseportal/internal/database"
	"courseportal/internal/domain"
	"courseportal/internal/repository"
)

func typedFile(t *testing.T, name, mimeType, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	header.Set("Content-Type", mimeType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

type docFixture struct {
	service *Service
	db      *gorm.DB
	staff   *domain.User
	student *domain.User
	module  *domain.Module
}

func newDocFixture(t *testing.T) *docFixture {
	t.Helper()

	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewDocumentRepository(db),
		repository.NewModuleRepository(db),
		repository.NewEnrollmentRepository(db),
		NewStorage(t.TempDir()),
		repository.NewSystemLogRepository(db),
	)

	staff := &domain.User{Email: "lecturer@ur.ac.rw", Role: domain.RoleInstructor, IsActive: true}
	student := &domain.User{Email: "student@ur.ac.rw", Role: domain.RoleStudent, IsActive: true}
	module := &domain.Module{
		ModuleCode: "CSC101", SchoolID: 1, SemesterID: 1, Name: "Computing",
		Credits: 10, ModuleType: domain.ModuleTypeCore, IsEnrollmentOpen: true, IsActive: true,
	}
	require.NoError(t, db.Create(staff).Error)
	require.NoError(t, db.Create(student).Error)
	require.NoError(t, db.Create(module).Error)

	return &docFixture{service: svc, db: db, staff: staff, student: student, module: module}
}

func (f *docFixture) enrollStudent(t *testing.T) {
	t.Helper()
	year := &domain.AcademicYear{YearCode: "2025-2026", Name: "AY", IsActive: true}
	require.NoError(t, f.db.Create(year).Error)
	require.NoError(t, f.db.Create(&domain.Enrollment{
		StudentID: f.student.ID, ModuleID: f.module.ID, AcademicYearID: year.ID,
		Status: domain.EnrollmentActive,
	}).Error)
}

func (f *docFixture) upload(t *testing.T) *domain.Document {
	t.Helper()
	doc, err := f.service.Upload(context.Background(), f.staff.ID, UploadInput{
		ModuleID: f.module.ID,
		Title:    "Week 1 slides",
		Category: "lecture",
		File:     typedFile(t, "week1.pdf", "application/pdf", "pdf-bytes"),
	})
	require.NoError(t, err)
	return doc
}

func TestUploadStoresMetadata(t *testing.T) {
	f := newDocFixture(t)

	doc := f.upload(t)
	assert.Equal(t, "Week 1 slides", doc.Title)
	assert.Equal(t, "lecture", doc.Category)
	assert.Equal(t, "week1.pdf", doc.OriginalName)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.True(t, doc.IsPublished)
}

func TestUploadRejectsUnknownType(t *testing.T) {
	f := newDocFixture(t)

	_, err := f.service.Upload(context.Background(), f.staff.ID, UploadInput{
		ModuleID: f.module.ID,
		File:     typedFile(t, "malware.exe", "application/x-msdownload", "MZ"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestUploadRejectsUnknownModule(t *testing.T) {
	f := newDocFixture(t)

	_, err := f.service.Upload(context.Background(), f.staff.ID, UploadInput{
		ModuleID: 9999,
		File:     typedFile(t, "a.pdf", "application/pdf", "x"),
	})
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestUploadRejectsBadCategory(t *testing.T) {
	f := newDocFixture(t)

	_, err := f.service.Upload(context.Background(), f.staff.ID, UploadInput{
		ModuleID: f.module.ID,
		Category: "memes",
		File:     typedFile(t, "a.pdf", "application/pdf", "x"),
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestListRequiresEnrollment(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	f.upload(t)

	_, err := f.service.ListByModule(ctx, f.student.ID, "student", f.module.ID, "")
	assert.ErrorIs(t, err, ErrNotPermitted)

	f.enrollStudent(t)
	docs, err := f.service.ListByModule(ctx, f.student.ID, "student", f.module.ID, "")
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	// Staff read without enrollment.
	docs, err = f.service.ListByModule(ctx, f.staff.ID, "instructor", f.module.ID, "")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDownloadCountsAndStreams(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	doc := f.upload(t)
	f.enrollStudent(t)

	got, abs, err := f.service.Download(ctx, f.student.ID, "student", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))

	var reloaded domain.Document
	require.NoError(t, f.db.First(&reloaded, doc.ID).Error)
	assert.Equal(t, int64(1), reloaded.DownloadCount)
}

func TestDeleteUploaderOrAdminOnly(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()
	doc := f.upload(t)
	f.enrollStudent(t)

	err := f.service.Delete(ctx, f.student.ID, "student", doc.ID)
	assert.ErrorIs(t, err, ErrNotPermitted)

	require.NoError(t, f.service.Delete(ctx, f.staff.ID, "instructor", doc.ID))

	err = f.service.Delete(ctx, f.staff.ID, "instructor", doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
