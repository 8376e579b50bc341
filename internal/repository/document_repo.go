package repository

import (
	"context"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var d domain.Document
	tx := r.db.WithContext(ctx).First(&d, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &d, nil
}

func (r *DocumentRepository) ListByModule(ctx context.Context, moduleID int64, category string) ([]domain.Document, error) {
	q := r.db.WithContext(ctx).
		Where("module_id = ? AND is_published = ?", moduleID, true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var docs []domain.Document
	err := q.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Document{}, id).Error
}

// IncrementDownloads bumps the counter atomically in the database.
func (r *DocumentRepository) IncrementDownloads(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Document{}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1")).Error
}

func (r *DocumentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Document{}).Count(&n).Error
	return n, err
}
