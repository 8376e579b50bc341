package auth

import (
	"context"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	DB() *gorm.DB // magic link rows live on the same connection
}

// ActivityRecorder receives audit entries for successful logins.
// A nil recorder disables audit logging.
type ActivityRecorder interface {
	Record(ctx context.Context, entry *domain.SystemLog) error
}
