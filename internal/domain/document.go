package domain

import (
	"fmt"
	"time"
)

// Document is an uploaded file attached to a module.
type Document struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	ModuleID     int64     `gorm:"column:module_id;index" json:"module_id"`
	UploadedBy   int64     `gorm:"column:uploaded_by" json:"uploaded_by"`
	Title        string    `gorm:"column:title" json:"title"`
	Description  string    `gorm:"column:description" json:"description,omitempty"`
	Category     string    `gorm:"column:category" json:"category"` // lecture, assignment, notes, exam, general
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	FilePath     string    `gorm:"column:file_path" json:"-"` // relative disk path
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	IsPublished  bool      `gorm:"column:is_published" json:"is_published"`

	DownloadCount int64     `gorm:"column:download_count" json:"download_count"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

// FormattedSize renders the byte count for display.
func (d *Document) FormattedSize() string {
	size := float64(d.Size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", size)
}
