package repository

import (
	"context"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

type AcademicYearRepository struct {
	db *gorm.DB
}

func NewAcademicYearRepository(db *gorm.DB) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

func (r *AcademicYearRepository) Create(ctx context.Context, y *domain.AcademicYear) error {
	return r.db.WithContext(ctx).Create(y).Error
}

func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*domain.AcademicYear, error) {
	var y domain.AcademicYear
	tx := r.db.WithContext(ctx).Preload("Semesters").First(&y, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &y, nil
}

func (r *AcademicYearRepository) List(ctx context.Context) ([]domain.AcademicYear, error) {
	var years []domain.AcademicYear
	err := r.db.WithContext(ctx).Preload("Semesters").Order("start_date DESC").Find(&years).Error
	return years, err
}

func (r *AcademicYearRepository) GetActive(ctx context.Context) (*domain.AcademicYear, error) {
	var y domain.AcademicYear
	tx := r.db.WithContext(ctx).Preload("Semesters").Where("is_active = ?", true).First(&y)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &y, nil
}

// Activate marks one year active and deactivates every other year in the
// same transaction.
func (r *AcademicYearRepository) Activate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.AcademicYear{}).
			Where("id <> ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.AcademicYear{}).
			Where("id = ?", id).
			Updates(map[string]any{"is_active": true, "is_completed": false})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *AcademicYearRepository) Complete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&domain.AcademicYear{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "is_completed": true})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AcademicYearRepository) CreateSemester(ctx context.Context, s *domain.Semester) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *AcademicYearRepository) ListSemesters(ctx context.Context, yearID int64) ([]domain.Semester, error) {
	var semesters []domain.Semester
	err := r.db.WithContext(ctx).
		Where("academic_year_id = ?", yearID).
		Order("start_date").
		Find(&semesters).Error
	return semesters, err
}

func (r *AcademicYearRepository) GetSemester(ctx context.Context, id int64) (*domain.Semester, error) {
	var s domain.Semester
	tx := r.db.WithContext(ctx).First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}
