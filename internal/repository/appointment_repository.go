package repository

import (
	"errors"
	"time"

	"localgov-backend/internal/models"
	"localgov-backend/internal/scheduler"

	"gorm.io/gorm"
)

// ErrSlotTaken means another pending/confirmed booking already holds the slot.
var ErrSlotTaken = errors.New("time slot is already booked")

// AppointmentListOptions are the query-string filters for list endpoints.
type AppointmentListOptions struct {
	Status   string
	Upcoming bool
	Page     int
	Limit    int
}

type AppointmentRepository interface {
	Book(appointment *models.Appointment) error
	FindByID(id uint64) (*models.Appointment, error)
	FindByIDAndUser(id, userID uint64) (*models.Appointment, error)
	ListByUser(userID uint64, opts AppointmentListOptions) ([]models.Appointment, int64, error)
	ListAll(opts AppointmentListOptions) ([]models.Appointment, int64, error)
	Upcoming(userID uint64, limit int) ([]models.Appointment, error)
	BookedSlots(serviceID uint, date string) ([]string, error)
	Update(appointment *models.Appointment) error
	DueOn(date string) ([]models.Appointment, error)
	CountByStatus(status string) (int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db}
}

// Statuses that still hold their slot. Rescheduled bookings count, they are
// going ahead, just on a new date.
var activeStatuses = []string{models.StatusPending, models.StatusConfirmed, models.StatusRescheduled}

// Book inserts the appointment with its queue number inside one transaction.
// The existence check gives the friendly error on the common path; the unique
// index on active_slot_key is what actually stops two concurrent requests
// from taking the same slot. The queue number comes from an atomic
// per-(service, day) counter so two same-day bookings can never share one.
func (r *appointmentRepository) Book(appointment *models.Appointment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var clash int64
		if err := tx.Model(&models.Appointment{}).
			Where("service_id = ? AND appointment_date = ? AND time_slot = ? AND status IN ?",
				appointment.ServiceID, appointment.AppointmentDate, appointment.TimeSlot, activeStatuses).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return ErrSlotTaken
		}

		// Atomic bump, never decremented (cancellations keep their number)
		if err := tx.Exec(
			"INSERT INTO queue_sequences (service_id, slot_date, counter, updated_at) VALUES (?, ?, 1, ?) "+
				"ON DUPLICATE KEY UPDATE counter = counter + 1, updated_at = VALUES(updated_at)",
			appointment.ServiceID, appointment.AppointmentDate, time.Now()).Error; err != nil {
			return err
		}

		var seq models.QueueSequence
		if err := tx.Where("service_id = ? AND slot_date = ?",
			appointment.ServiceID, appointment.AppointmentDate).First(&seq).Error; err != nil {
			return err
		}

		appointment.QueueNumber = seq.Counter
		appointment.EstimatedWaitTime = scheduler.WaitEstimate(seq.Counter)

		key := models.SlotKey(appointment.ServiceID, appointment.AppointmentDate, appointment.TimeSlot)
		appointment.ActiveSlotKey = &key

		if err := tx.Create(appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return err
		}
		return nil
	})
}

func (r *appointmentRepository) FindByID(id uint64) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.Preload("Service").Preload("User").First(&appointment, id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDAndUser(id, userID uint64) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.Preload("Service").
		Where("id = ? AND user_id = ?", id, userID).
		First(&appointment).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListByUser(userID uint64, opts AppointmentListOptions) ([]models.Appointment, int64, error) {
	query := r.db.Model(&models.Appointment{}).Where("user_id = ?", userID)
	return r.list(query, opts)
}

func (r *appointmentRepository) ListAll(opts AppointmentListOptions) ([]models.Appointment, int64, error) {
	query := r.db.Model(&models.Appointment{}).Preload("User")
	return r.list(query, opts)
}

func (r *appointmentRepository) list(query *gorm.DB, opts AppointmentListOptions) ([]models.Appointment, int64, error) {
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Upcoming {
		today := time.Now().Format("2006-01-02")
		query = query.Where("appointment_date >= ? AND status IN ?", today, activeStatuses).
			Order("appointment_date asc, time_slot asc")
	} else {
		query = query.Order("appointment_date desc, time_slot desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []models.Appointment
	offset := (opts.Page - 1) * opts.Limit
	err := query.Preload("Service").Offset(offset).Limit(opts.Limit).Find(&appointments).Error
	return appointments, total, err
}

func (r *appointmentRepository) Upcoming(userID uint64, limit int) ([]models.Appointment, error) {
	var appointments []models.Appointment
	today := time.Now().Format("2006-01-02")
	err := r.db.Preload("Service").
		Where("user_id = ? AND appointment_date >= ? AND status IN ?", userID, today, activeStatuses).
		Order("appointment_date asc, time_slot asc").
		Limit(limit).
		Find(&appointments).Error
	return appointments, err
}

// BookedSlots lists time_slot values holding the service/date, for the
// availability endpoint.
func (r *appointmentRepository) BookedSlots(serviceID uint, date string) ([]string, error) {
	var slots []string
	err := r.db.Model(&models.Appointment{}).
		Where("service_id = ? AND appointment_date = ? AND status IN ?", serviceID, date, activeStatuses).
		Pluck("time_slot", &slots).Error
	return slots, err
}

func (r *appointmentRepository) Update(appointment *models.Appointment) error {
	err := r.db.Save(appointment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return err
}

// DueOn returns every still-active appointment for a calendar day,
// used by the reminder job.
func (r *appointmentRepository) DueOn(date string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Preload("User").
		Where("appointment_date = ? AND status IN ?", date, activeStatuses).
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
