package models

import "time"

// Document status values
const (
	DocPending  = "pending"
	DocVerified = "verified"
	DocRejected = "rejected"
)

type Document struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	UserID       uint64 `gorm:"not null;index" json:"user_id"`
	OriginalName string `gorm:"size:255;not null" json:"original_name"`
	StoredName   string `gorm:"size:255;not null" json:"stored_name"` // uuid + ext under the upload dir
	MimeType     string `gorm:"size:100" json:"mime_type"`
	Size         int64  `json:"size"`
	Category     string `gorm:"size:50" json:"category"`
	Status       string `gorm:"size:20;default:pending" json:"status"`

	VerifiedBy *uint64 `json:"verified_by,omitempty"` // officer user id
	Remarks    string  `gorm:"size:255" json:"remarks,omitempty"`

	DownloadCount int        `gorm:"default:0" json:"download_count"`
	LastAccessed  *time.Time `json:"last_accessed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type VerifyDocumentInput struct {
	Action  string `json:"action" binding:"required,oneof=verify reject"`
	Remarks string `json:"remarks"`
}
