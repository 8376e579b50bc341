package domain

import "time"

// MagicLink is a one-time login link issued for an email address.
// The raw token never touches the database; only its peppered hash is stored.
// A link is usable iff ConsumedAt is nil and ExpiresAt is in the future.
type MagicLink struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id"`
	UserID      int64      `gorm:"column:user_id;index" json:"user_id"`
	TokenHash   string     `gorm:"column:token_hash;uniqueIndex" json:"-"`
	IssuedAt    time.Time  `gorm:"column:issued_at" json:"issued_at"`
	LastSentAt  time.Time  `gorm:"column:last_sent_at" json:"last_sent_at"`
	ExpiresAt   time.Time  `gorm:"column:expires_at" json:"expires_at"`
	ConsumedAt  *time.Time `gorm:"column:consumed_at" json:"consumed_at,omitempty"`
	ResendCount int        `gorm:"column:resend_count" json:"resend_count"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (MagicLink) TableName() string { return "magic_links" }

// Usable reports whether the link can still be consumed at t.
func (l *MagicLink) Usable(t time.Time) bool {
	return l.ConsumedAt == nil && t.Before(l.ExpiresAt)
}
