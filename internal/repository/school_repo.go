package repository

import (
	"context"
	"strings"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

func (r *SchoolRepository) Create(ctx context.Context, s *domain.School) error {
	s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*domain.School, error) {
	var s domain.School
	tx := r.db.WithContext(ctx).First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *SchoolRepository) List(ctx context.Context, collegeID int64) ([]domain.School, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true).Order("code")
	if collegeID > 0 {
		q = q.Where("college_id = ?", collegeID)
	}
	var schools []domain.School
	err := q.Find(&schools).Error
	return schools, err
}

func (r *SchoolRepository) Update(ctx context.Context, s *domain.School) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SchoolRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.School{}).Count(&n).Error
	return n, err
}
