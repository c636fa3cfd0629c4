package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Appointment status values
const (
	StatusPending     = "pending"
	StatusConfirmed   = "confirmed"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

type Appointment struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	UserID    uint64 `gorm:"not null;index" json:"user_id"`
	ServiceID uint   `gorm:"not null;index" json:"service_id"`

	// Denormalized so the booking survives catalog edits
	ServiceName string `gorm:"size:100" json:"service_name"`
	Department  string `gorm:"size:100" json:"department"`
	Location    string `gorm:"size:255" json:"location"`

	AppointmentDate string `gorm:"type:date;not null;index" json:"appointment_date"` // YYYY-MM-DD
	TimeSlot        string `gorm:"size:10;not null" json:"time_slot"`                // e.g. "09:30"
	Status          string `gorm:"size:20;default:pending" json:"status"`

	QueueNumber       int `json:"queue_number"`
	EstimatedWaitTime int `json:"estimated_wait_time"` // minutes

	Description string `gorm:"type:text" json:"description"`
	Priority    string `gorm:"size:20;default:normal" json:"priority"`

	// "serviceID|date|slot" while the booking holds its slot, NULL once it
	// no longer does. The unique index is what actually prevents double
	// booking under concurrent requests.
	ActiveSlotKey *string `gorm:"uniqueIndex;size:64" json:"-"`

	RescheduleHistory  json.RawMessage `gorm:"type:json" json:"reschedule_history,omitempty"` // []RescheduleEntry
	CancellationReason string          `gorm:"size:255" json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type RescheduleEntry struct {
	OldDate   string    `json:"old_date"`
	NewDate   string    `json:"new_date"`
	Reason    string    `json:"reason"`
	ChangedBy uint64    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

// IsActive reports whether the booking still holds its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed || a.Status == StatusRescheduled
}

// SlotKey builds the active_slot_key value for a booking.
func SlotKey(serviceID uint, date, slot string) string {
	return fmt.Sprintf("%d|%s|%s", serviceID, date, slot)
}

// AppendReschedule adds one entry to the history JSON.
func (a *Appointment) AppendReschedule(entry RescheduleEntry) {
	var history []RescheduleEntry
	if len(a.RescheduleHistory) > 0 {
		_ = json.Unmarshal(a.RescheduleHistory, &history)
	}
	history = append(history, entry)
	raw, _ := json.Marshal(history)
	a.RescheduleHistory = raw
}

// QueueSequence gives out queue numbers atomically per (service, day).
// Bumped with INSERT ... ON DUPLICATE KEY UPDATE, never decremented.
type QueueSequence struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ServiceID uint      `gorm:"not null;uniqueIndex:idx_service_day" json:"service_id"`
	SlotDate  string    `gorm:"type:date;not null;uniqueIndex:idx_service_day" json:"slot_date"`
	Counter   int       `gorm:"not null;default:0" json:"counter"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateAppointmentInput struct {
	ServiceID       uint   `json:"service_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	TimeSlot        string `json:"time_slot" binding:"required"`
	Description     string `json:"description"`
	Priority        string `json:"priority" binding:"omitempty,oneof=low normal high"`
}

type UpdateAppointmentInput struct {
	AppointmentDate string `json:"appointment_date" binding:"omitempty,datetime=2006-01-02"`
	TimeSlot        string `json:"time_slot"`
	Description     string `json:"description"`
	Priority        string `json:"priority" binding:"omitempty,oneof=low normal high"`
	Reason          string `json:"reason"`
}

type CancelAppointmentInput struct {
	Reason string `json:"reason"`
}
