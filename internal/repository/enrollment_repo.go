package repository

import (
	"context"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) DB() *gorm.DB { return r.db }

func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EnrollmentRepository) Get(ctx context.Context, studentID, moduleID, yearID int64) (*domain.Enrollment, error) {
	var e domain.Enrollment
	tx := r.db.WithContext(ctx).
		Where("student_id = ? AND module_id = ? AND academic_year_id = ?", studentID, moduleID, yearID).
		First(&e)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &e, nil
}

func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64, status domain.EnrollmentStatus) ([]domain.Enrollment, error) {
	q := r.db.WithContext(ctx).Where("student_id = ?", studentID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var enrollments []domain.Enrollment
	err := q.Order("enrolled_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CountActiveByModule(ctx context.Context, moduleID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("module_id = ? AND status = ?", moduleID, domain.EnrollmentActive).
		Count(&n).Error
	return n, err
}

func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EnrolledModuleIDs returns the ids of modules the student currently has an
// active enrollment in.
func (r *EnrollmentRepository) EnrolledModuleIDs(ctx context.Context, studentID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("student_id = ? AND status = ?", studentID, domain.EnrollmentActive).
		Pluck("module_id", &ids).Error
	return ids, err
}

func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, studentID, moduleID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("student_id = ? AND module_id = ? AND status = ?", studentID, moduleID, domain.EnrollmentActive).
		Count(&n).Error
	return n > 0, err
}

func (r *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).Count(&n).Error
	return n, err
}
