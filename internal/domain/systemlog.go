package domain

import "time"

// SystemLog records user-visible activity (logins, enrollments, uploads).
type SystemLog struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID    *int64    `gorm:"column:user_id" json:"user_id,omitempty"`
	Action    string    `gorm:"column:action" json:"action"`
	Details   string    `gorm:"column:details" json:"details,omitempty"`
	IPAddress string    `gorm:"column:ip_address" json:"ip_address,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (SystemLog) TableName() string { return "system_logs" }
