package repository

import (
	"context"
	"strings"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).First(&u, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	return count > 0, tx.Error
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

type UserFilter struct {
	Role     string
	IsActive *bool
	Search   string
	Page     int
	Limit    int
}

func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]domain.User, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	q := r.db.WithContext(ctx).Model(&domain.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Role  string
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Role] = r.Count
	}
	return counts, nil
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *UserRepository) SetRole(ctx context.Context, id int64, role domain.UserRole) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}
