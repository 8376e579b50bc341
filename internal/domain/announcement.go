package domain

import "time"

type Announcement struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	ModuleID    int64     `gorm:"column:module_id;index" json:"module_id"`
	AuthorID    int64     `gorm:"column:author_id" json:"author_id"`
	Title       string    `gorm:"column:title" json:"title"`
	Content     string    `gorm:"column:content" json:"content"`
	IsPublished bool      `gorm:"column:is_published" json:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Announcement) TableName() string { return "announcements" }
