package repository

import (
	"context"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

type SystemLogRepository struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) *SystemLogRepository {
	return &SystemLogRepository{db: db}
}

func (r *SystemLogRepository) Record(ctx context.Context, entry *domain.SystemLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *SystemLogRepository) Recent(ctx context.Context, limit int) ([]domain.SystemLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var entries []domain.SystemLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
