package repository

import (
	"context"
	"strings"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

func (r *ModuleRepository) DB() *gorm.DB { return r.db }

func (r *ModuleRepository) Create(ctx context.Context, m *domain.Module) error {
	m.ModuleCode = strings.ToUpper(strings.TrimSpace(m.ModuleCode))
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ModuleRepository) GetByID(ctx context.Context, id int64) (*domain.Module, error) {
	var m domain.Module
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

func (r *ModuleRepository) GetByCode(ctx context.Context, schoolID int64, code string) (*domain.Module, error) {
	var m domain.Module
	tx := r.db.WithContext(ctx).
		Where("school_id = ? AND module_code = ?", schoolID, strings.ToUpper(strings.TrimSpace(code))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

type ModuleFilter struct {
	SchoolID       int64
	SemesterID     int64
	Search         string
	EnrollmentOpen *bool
	Page           int
	Limit          int
}

func (r *ModuleRepository) List(ctx context.Context, f ModuleFilter) ([]domain.Module, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	q := r.db.WithContext(ctx).Model(&domain.Module{}).Where("is_active = ?", true)
	if f.SchoolID > 0 {
		q = q.Where("school_id = ?", f.SchoolID)
	}
	if f.SemesterID > 0 {
		q = q.Where("semester_id = ?", f.SemesterID)
	}
	if f.EnrollmentOpen != nil {
		q = q.Where("is_enrollment_open = ?", *f.EnrollmentOpen)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(module_code) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var modules []domain.Module
	err := q.Order("module_code").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&modules).Error
	return modules, total, err
}

func (r *ModuleRepository) Update(ctx context.Context, m *domain.Module) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *ModuleRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).Model(&domain.Module{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *ModuleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Module{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}
