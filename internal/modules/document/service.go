package document

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"courseportal/internal/domain"
	"courseportal/internal/repository"
)

const maxUploadSize = 50 << 20 // 50 MB

// allowedMimeTypes is an allowlist keyed by the client-declared content type.
// The stored name never depends on the original filename, so a mislabeled
// type cannot place executable content under a trusted path.
var allowedMimeTypes = map[string]bool{
	"application/pdf":               true,
	"application/msword":            true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.ms-excel":      true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/zip": true,
	"text/plain":      true,
	"text/csv":        true,
	"image/png":       true,
	"image/jpeg":      true,
}

var allowedCategories = map[string]bool{
	"lecture":    true,
	"assignment": true,
	"notes":      true,
	"exam":       true,
	"general":    true,
}

type UploadInput struct {
	ModuleID    int64
	Title       string
	Description string
	Category    string
	File        *multipart.FileHeader
}

type Service struct {
	documents   *repository.DocumentRepository
	modules     *repository.ModuleRepository
	enrollments *repository.EnrollmentRepository
	storage     *Storage
	activity    *repository.SystemLogRepository
}

func NewService(
	documents *repository.DocumentRepository,
	modules *repository.ModuleRepository,
	enrollments *repository.EnrollmentRepository,
	storage *Storage,
	activity *repository.SystemLogRepository,
) *Service {
	return &Service{
		documents:   documents,
		modules:     modules,
		enrollments: enrollments,
		storage:     storage,
		activity:    activity,
	}
}

// Upload validates and stores a file, then records its metadata. Only staff
// can upload; the handler enforces that via middleware.
func (s *Service) Upload(ctx context.Context, uploaderID int64, in UploadInput) (*domain.Document, error) {
	if in.File.Size > maxUploadSize {
		return nil, ErrFileTooLarge
	}
	mimeType := in.File.Header.Get("Content-Type")
	if !allowedMimeTypes[mimeType] {
		return nil, ErrUnsupportedType
	}
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category == "" {
		category = "general"
	}
	if !allowedCategories[category] {
		return nil, ErrInvalidCategory
	}

	if _, err := s.modules.GetByID(ctx, in.ModuleID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModuleNotFound
	} else if err != nil {
		return nil, err
	}

	rel, err := s.storage.Save(in.File)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ModuleID:     in.ModuleID,
		UploadedBy:   uploaderID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     category,
		OriginalName: in.File.Filename,
		FilePath:     rel,
		MimeType:     mimeType,
		Size:         in.File.Size,
		IsPublished:  true,
	}
	if doc.Title == "" {
		doc.Title = in.File.Filename
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		s.storage.Remove(rel)
		return nil, err
	}
	s.record(ctx, uploaderID, "document.upload", doc.OriginalName)
	return doc, nil
}

// ListByModule returns the module's published documents. Students must be
// enrolled on the module; staff see everything.
func (s *Service) ListByModule(ctx context.Context, userID int64, role string, moduleID int64, category string) ([]domain.Document, error) {
	if err := s.authorize(ctx, userID, role, moduleID); err != nil {
		return nil, err
	}
	return s.documents.ListByModule(ctx, moduleID, category)
}

// Download resolves the document to its absolute disk path and bumps the
// download counter. The caller streams the file.
func (s *Service) Download(ctx context.Context, userID int64, role string, docID int64) (*domain.Document, string, error) {
	doc, err := s.documents.GetByID(ctx, docID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	if err := s.authorize(ctx, userID, role, doc.ModuleID); err != nil {
		return nil, "", err
	}

	abs, err := s.storage.Abs(doc.FilePath)
	if err != nil {
		return nil, "", err
	}
	if err := s.documents.IncrementDownloads(ctx, doc.ID); err != nil {
		return nil, "", err
	}
	return doc, abs, nil
}

// Delete removes the document record and its file. Allowed for the original
// uploader and for admins.
func (s *Service) Delete(ctx context.Context, userID int64, role string, docID int64) error {
	doc, err := s.documents.GetByID(ctx, docID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if doc.UploadedBy != userID && role != string(domain.RoleAdmin) {
		return ErrNotPermitted
	}
	if err := s.documents.Delete(ctx, doc.ID); err != nil {
		return err
	}
	// Metadata removal wins; an orphan file is recoverable, a dangling row is not.
	_ = s.storage.Remove(doc.FilePath)
	s.record(ctx, userID, "document.delete", doc.OriginalName)
	return nil
}

func (s *Service) authorize(ctx context.Context, userID int64, role string, moduleID int64) error {
	if role == string(domain.RoleAdmin) || role == string(domain.RoleInstructor) {
		return nil
	}
	enrolled, err := s.enrollments.IsEnrolled(ctx, userID, moduleID)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotPermitted
	}
	return nil
}

func (s *Service) record(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Record(ctx, &domain.SystemLog{
		UserID:  &userID,
		Action:  action,
		Details: details,
	})
}
