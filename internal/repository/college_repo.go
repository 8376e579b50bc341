package repository

import (
	"context"
	"strings"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

type CollegeRepository struct {
	db *gorm.DB
}

func NewCollegeRepository(db *gorm.DB) *CollegeRepository {
	return &CollegeRepository{db: db}
}

func (r *CollegeRepository) Create(ctx context.Context, c *domain.College) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*domain.College, error) {
	var c domain.College
	tx := r.db.WithContext(ctx).Preload("Schools").First(&c, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *CollegeRepository) GetByCode(ctx context.Context, code string) (*domain.College, error) {
	var c domain.College
	tx := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&c)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *CollegeRepository) List(ctx context.Context, activeOnly bool) ([]domain.College, error) {
	q := r.db.WithContext(ctx).Preload("Schools").Order("code")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var colleges []domain.College
	err := q.Find(&colleges).Error
	return colleges, err
}

func (r *CollegeRepository) Update(ctx context.Context, c *domain.College) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CollegeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.College{}).Count(&n).Error
	return n, err
}
