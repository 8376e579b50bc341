package repository

import (
	"context"
	"errors"
	"strings"

	"courseportal/internal/domain"

	"gorm.io/gorm"
)

var ErrAlreadyLiked = errors.New("post already liked by user")

type KnowledgeRepository struct {
	db *gorm.DB
}

func NewKnowledgeRepository(db *gorm.DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

func (r *KnowledgeRepository) CreatePost(ctx context.Context, p *domain.KnowledgePost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *KnowledgeRepository) GetPost(ctx context.Context, id int64) (*domain.KnowledgePost, error) {
	var p domain.KnowledgePost
	tx := r.db.WithContext(ctx).First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

type PostFilter struct {
	PostType    string
	CollegeCode string
	Search      string
	Page        int
	Limit       int
}

func (r *KnowledgeRepository) ListPosts(ctx context.Context, f PostFilter) ([]domain.KnowledgePost, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	q := r.db.WithContext(ctx).Model(&domain.KnowledgePost{}).Where("is_flagged = ?", false)
	if f.PostType != "" {
		q = q.Where("post_type = ?", f.PostType)
	}
	if f.CollegeCode != "" {
		q = q.Where("college_code = ?", strings.ToUpper(strings.TrimSpace(f.CollegeCode)))
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []domain.KnowledgePost
	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *KnowledgeRepository) IncrementViews(ctx context.Context, postID int64) error {
	return r.db.WithContext(ctx).Model(&domain.KnowledgePost{}).
		Where("id = ?", postID).
		Update("views", gorm.Expr("views + 1")).Error
}

// LikePost inserts the like row and bumps the counter in one transaction.
// The unique index on (post_id, user_id) makes double likes fail at the
// insert, keeping row and counter consistent under concurrency.
func (r *KnowledgeRepository) LikePost(ctx context.Context, postID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := domain.KnowledgePostLike{PostID: postID, UserID: userID}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
				return ErrAlreadyLiked
			}
			return err
		}
		res := tx.Model(&domain.KnowledgePost{}).
			Where("id = ?", postID).
			Update("likes", gorm.Expr("likes + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *KnowledgeRepository) CreateAnswer(ctx context.Context, a *domain.KnowledgeAnswer) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *KnowledgeRepository) GetAnswer(ctx context.Context, id int64) (*domain.KnowledgeAnswer, error) {
	var a domain.KnowledgeAnswer
	tx := r.db.WithContext(ctx).First(&a, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &a, nil
}

func (r *KnowledgeRepository) ListAnswers(ctx context.Context, postID int64) ([]domain.KnowledgeAnswer, error) {
	var answers []domain.KnowledgeAnswer
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("is_verified DESC, created_at").
		Find(&answers).Error
	return answers, err
}

func (r *KnowledgeRepository) SetAnswerVerified(ctx context.Context, id int64, verified bool) error {
	res := r.db.WithContext(ctx).Model(&domain.KnowledgeAnswer{}).
		Where("id = ?", id).
		Update("is_verified", verified)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *KnowledgeRepository) CountPosts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.KnowledgePost{}).Count(&n).Error
	return n, err
}
