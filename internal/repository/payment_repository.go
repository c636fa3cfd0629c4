package repository

import (
	"localgov-backend/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *models.Payment) error
	FindByOrderNo(orderNo string) (*models.Payment, error)
	FindPaidByAppointment(appointmentID uint64) (*models.Payment, error)
	Update(payment *models.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) FindByOrderNo(orderNo string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Preload("Appointment").Where("order_no = ?", orderNo).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindPaidByAppointment(appointmentID uint64) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("appointment_id = ? AND status = ?", appointmentID, models.PayPaid).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}
