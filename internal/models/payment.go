package models

import "time"

// Payment status values
const (
	PayPending = "pending"
	PayPaid    = "paid"
	PayFailed  = "failed"
)

// Payment is one fee payment attempt for an appointment (Midtrans Snap).
type Payment struct {
	ID            uint64  `gorm:"primaryKey" json:"id"`
	AppointmentID uint64  `gorm:"not null;index" json:"appointment_id"`
	OrderNo       string  `gorm:"unique;size:50" json:"order_no"` // GOV-<unix>
	Amount        float64 `json:"amount"`
	Status        string  `gorm:"size:20;default:pending" json:"status"`
	SnapToken     string  `gorm:"size:255" json:"snap_token,omitempty"`
	RedirectURL   string  `gorm:"size:255" json:"redirect_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}
