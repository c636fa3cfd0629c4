package models

import (
	"encoding/json"
	"time"
)

// Service is the catalog of government services a citizen can book.
// Windows and RequiredDocuments are stored as JSON columns.
type Service struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Name              string          `gorm:"size:100;not null" json:"name"`
	Category          string          `gorm:"size:50" json:"category"`
	Department        string          `gorm:"size:100" json:"department"`
	Location          string          `gorm:"size:255" json:"location"`
	Fee               float64         `gorm:"default:0" json:"fee"`
	Description       string          `gorm:"type:text" json:"description"`
	Windows           json.RawMessage `gorm:"type:json" json:"windows"`            // []ServiceWindow
	RequiredDocuments json.RawMessage `gorm:"type:json" json:"required_documents"` // []string
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ServiceWindow is one weekday's configured availability.
// Note: slot candidates are NOT generated from these times, they only gate
// whether the weekday is bookable at all (see scheduler package).
type ServiceWindow struct {
	Day          string `json:"day"` // Monday..Friday
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SlotDuration int    `json:"slot_duration"` // minutes
}

// ParseWindows decodes the JSON column. Bad or empty JSON just means no windows.
func (s *Service) ParseWindows() []ServiceWindow {
	var windows []ServiceWindow
	if len(s.Windows) == 0 {
		return windows
	}
	_ = json.Unmarshal(s.Windows, &windows)
	return windows
}

type ServiceInput struct {
	Name              string          `json:"name" binding:"required"`
	Category          string          `json:"category" binding:"required"`
	Department        string          `json:"department" binding:"required"`
	Location          string          `json:"location"`
	Fee               float64         `json:"fee" binding:"min=0"`
	Description       string          `json:"description"`
	Windows           json.RawMessage `json:"windows"`
	RequiredDocuments json.RawMessage `json:"required_documents"`
}
