package repository

import (
	"context"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*domain.Announcement, error) {
	var a domain.Announcement
	tx := r.db.WithContext(ctx).First(&a, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &a, nil
}

func (r *AnnouncementRepository) ListByModule(ctx context.Context, moduleID int64) ([]domain.Announcement, error) {
	var items []domain.Announcement
	err := r.db.WithContext(ctx).
		Where("module_id = ? AND is_published = ?", moduleID, true).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *AnnouncementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Announcement{}, id).Error
}
