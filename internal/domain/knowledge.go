package domain

import "time"

type PostType string

const (
	PostTypeQuestion    PostType = "question"
	PostTypeExplanation PostType = "explanation"
	PostTypeResource    PostType = "resource"
	PostTypeInsight     PostType = "insight"
)

func ParsePostType(s string) (PostType, bool) {
	switch PostType(s) {
	case PostTypeQuestion, PostTypeExplanation, PostTypeResource, PostTypeInsight:
		return PostType(s), true
	}
	return "", false
}

// KnowledgePost is a server-persisted stream post with explicit ownership
// and timestamps.
type KnowledgePost struct {
	ID          int64    `gorm:"column:id;primaryKey" json:"id"`
	AuthorID    int64    `gorm:"column:author_id;index" json:"author_id"`
	Title       string   `gorm:"column:title" json:"title"`
	Content     string   `gorm:"column:content" json:"content"`
	PostType    PostType `gorm:"column:post_type" json:"post_type"`
	CollegeCode string   `gorm:"column:college_code" json:"college_code,omitempty"`
	ModuleCode  string   `gorm:"column:module_code" json:"module_code,omitempty"`
	Tags        string   `gorm:"column:tags" json:"tags,omitempty"`
	IsAnonymous bool     `gorm:"column:is_anonymous" json:"is_anonymous"`
	IsFlagged   bool     `gorm:"column:is_flagged" json:"is_flagged"`

	Likes int64 `gorm:"column:likes" json:"likes"`
	Views int64 `gorm:"column:views" json:"views"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (KnowledgePost) TableName() string { return "knowledge_posts" }

type KnowledgeAnswer struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	PostID       int64     `gorm:"column:post_id;index" json:"post_id"`
	AuthorID     int64     `gorm:"column:author_id" json:"author_id"`
	Content      string    `gorm:"column:content" json:"content"`
	IsVerified   bool      `gorm:"column:is_verified" json:"is_verified"`
	HelpfulCount int64     `gorm:"column:helpful_count" json:"helpful_count"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (KnowledgeAnswer) TableName() string { return "knowledge_answers" }

// KnowledgePostLike records one like per user per post.
type KnowledgePostLike struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	PostID    int64     `gorm:"column:post_id;index:idx_post_user_like,unique" json:"post_id"`
	UserID    int64     `gorm:"column:user_id;index:idx_post_user_like,unique" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (KnowledgePostLike) TableName() string { return "knowledge_post_likes" }
