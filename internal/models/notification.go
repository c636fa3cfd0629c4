package models

import "time"

// Notification types
const (
	NotifAppointment = "appointment"
	NotifDocument    = "document"
	NotifPayment     = "payment"
	NotifSystem      = "system"
)

type Notification struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	UserID   uint64 `gorm:"not null;index" json:"user_id"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Message  string `gorm:"type:text" json:"message"`
	Type     string `gorm:"size:20;default:system" json:"type"`
	Priority string `gorm:"size:20;default:normal" json:"priority"`

	IsRead bool       `gorm:"default:false" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	// Loose pointer, not a foreign key (appointment/document/payment id)
	RelatedType string  `gorm:"size:20" json:"related_type,omitempty"`
	RelatedID   *uint64 `json:"related_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
